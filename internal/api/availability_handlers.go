package api

import (
	"encoding/json"
	"errors"

	"makemeet/internal/availability"
	"makemeet/internal/model"
	"makemeet/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// PutAvailability replaces one member's slot set wholesale. The first
// submission for a member answers 201 with a Location header; later
// submissions answer 200. The body in both cases is the member's stored
// availability after the write.
func (h *Handler) PutAvailability(c *fiber.Ctx) error {
	meetingID := c.Params("meetingId")
	memberID := c.Params("memberId")

	var slots []string
	if err := json.Unmarshal(c.Body(), &slots); err != nil {
		return jsonParseErrorJSON(c)
	}

	// Validate before touching storage: a bad payload must never cause a
	// partial write.
	if err := availability.ValidateSlots(slots); err != nil {
		return validationErrorJSON(c, err)
	}

	cookie := c.Cookies(authCookieName(meetingID))

	var firstSubmission bool
	updated, err := h.mutateMeeting(c.Context(), meetingID, func(m *model.Meeting) error {
		member, ok := m.MemberByID(memberID)
		if !ok {
			return errNoSuchMember
		}
		if cookie == "" {
			return errNotAuthenticated
		}
		if cookie != member.AuthCookie {
			return errNotAuthorized
		}

		_, had := m.Availability[memberID]
		firstSubmission = !had

		merged, err := availability.Merge(m.Availability, memberID, slots)
		if err != nil {
			return err
		}
		m.Availability = merged
		return nil
	})
	if err != nil {
		h.telemetry.RecordAvailabilityUpdate(c.Context(), meetingID, false)
		switch {
		case errors.Is(err, repository.ErrMeetingNotFound):
			return errorJSON(c, fiber.StatusNotFound, "No such meeting.")
		case errors.Is(err, errNoSuchMember):
			return errorJSON(c, fiber.StatusNotFound, "No such user.")
		case errors.Is(err, errNotAuthenticated):
			return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated for this meeting.")
		case errors.Is(err, errNotAuthorized):
			return errorJSON(c, fiber.StatusForbidden, "Not authorized to update this member's availability.")
		default:
			h.telemetry.Logger().ErrorContext(c.Context(), "Failed to update availability",
				"meeting_id", meetingID, "member_id", memberID, "error", err)
			return errorJSON(c, fiber.StatusInternalServerError, "Internal server error.")
		}
	}

	h.telemetry.RecordAvailabilityUpdate(c.Context(), meetingID, true)

	status := fiber.StatusOK
	if firstSubmission {
		status = fiber.StatusCreated
		c.Set("Location", c.Path())
	}
	return c.Status(status).JSON(updated.Availability[memberID])
}
