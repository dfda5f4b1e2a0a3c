package model

import (
	"makemeet/internal/availability"
)

// Member is one per-meeting identity. HashedPassword and AuthCookie are part
// of the stored document only and never leave the server; APIView strips them.
type Member struct {
	MemberID       string `json:"memberId"`
	Name           string `json:"name"`
	HashedPassword string `json:"hashedPassword,omitempty"`
	AuthCookie     string `json:"authCookie,omitempty"`
}

// APIView returns the member shape safe to send to clients.
func (m Member) APIView() Member {
	return Member{MemberID: m.MemberID, Name: m.Name}
}

// Meeting is the full document persisted per meeting: one JSON blob holding
// the name, everyone's availability, the bounds, the display timezone and the
// member roster. The TimeZone is used only for display conversion; all stored
// slots are UTC.
type Meeting struct {
	Name               string                           `json:"name" validate:"required,min=1"`
	Availability       availability.MeetingAvailability `json:"availability"`
	AvailabilityBounds availability.Bounds              `json:"availabilityBounds"`
	TimeZone           string                           `json:"timeZone" validate:"required,iana_tz"`
	Members            []Member                         `json:"members"`
}

// APIView returns the meeting with member credentials stripped.
func (m Meeting) APIView() Meeting {
	members := make([]Member, len(m.Members))
	for i, member := range m.Members {
		members[i] = member.APIView()
	}
	view := m
	view.Members = members
	return view
}

// MemberByID looks a member up in the roster.
func (m Meeting) MemberByID(id string) (Member, bool) {
	for _, member := range m.Members {
		if member.MemberID == id {
			return member, true
		}
	}
	return Member{}, false
}

// MemberByName looks a member up by display name, which is unique per meeting.
func (m Meeting) MemberByName(name string) (Member, bool) {
	for _, member := range m.Members {
		if member.Name == name {
			return member, true
		}
	}
	return Member{}, false
}
