package model

// RegisterRequest creates a new member identity for one meeting.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

// RegisterResponse carries the freshly minted member id.
type RegisterResponse struct {
	MemberID string `json:"memberId"`
}

// LoginRequest re-authenticates an existing member of one meeting.
type LoginRequest struct {
	MemberID string `json:"memberId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateMeetingResponse carries the id of a newly created meeting.
type CreateMeetingResponse struct {
	ID string `json:"id"`
}
