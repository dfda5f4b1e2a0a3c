package api

import (
	"encoding/json"
	"errors"

	"makemeet/internal/model"
	"makemeet/internal/repository"
	"makemeet/internal/service"
	"makemeet/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register mints a new member identity on one meeting and logs the caller in
// with it by setting the per-meeting auth cookie.
func (h *Handler) Register(c *fiber.Ctx) error {
	meetingID := c.Params("meetingId")

	var req model.RegisterRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonParseErrorJSON(c)
	}
	if err := h.validator.Validate(req); err != nil {
		return validationErrorJSON(c, err)
	}

	if err := h.attempts.CheckRegister(c.Context(), meetingID, req.Username); err != nil {
		if errors.Is(err, service.ErrTooManyAttempts) {
			return errorJSON(c, fiber.StatusTooManyRequests, "Too many registration attempts. Please try again later.")
		}
		h.telemetry.Logger().ErrorContext(c.Context(), "Rate limiter failed", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.telemetry.Logger().ErrorContext(c.Context(), "Failed to hash password", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	memberID := uuid.NewString()
	authCookie, err := util.RandomString(32)
	if err != nil {
		h.telemetry.Logger().ErrorContext(c.Context(), "Failed to generate auth cookie", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	_, err = h.mutateMeeting(c.Context(), meetingID, func(m *model.Meeting) error {
		if _, exists := m.MemberByName(req.Username); exists {
			return errUsernameTaken
		}
		m.Members = append(m.Members, model.Member{
			MemberID:       memberID,
			Name:           req.Username,
			HashedPassword: string(passwordHash),
			AuthCookie:     authCookie,
		})
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMeetingNotFound):
			return errorJSON(c, fiber.StatusNotFound, "No such meeting.")
		case errors.Is(err, errUsernameTaken):
			return errorJSON(c, fiber.StatusConflict, "A member with this name already exists.")
		default:
			h.telemetry.Logger().ErrorContext(c.Context(), "Failed to register member",
				"meeting_id", meetingID, "error", err)
			return errorJSON(c, fiber.StatusInternalServerError, "Internal server error.")
		}
	}

	h.telemetry.Logger().InfoContext(c.Context(), "Member registered",
		"meeting_id", meetingID, "member_id", memberID, "ip", c.IP())

	h.setAuthCookie(c, meetingID, authCookie)
	return c.JSON(model.RegisterResponse{MemberID: memberID})
}

// Login re-authenticates an existing member and refreshes the per-meeting
// auth cookie.
func (h *Handler) Login(c *fiber.Ctx) error {
	meetingID := c.Params("meetingId")

	var req model.LoginRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonParseErrorJSON(c)
	}
	if err := h.validator.Validate(req); err != nil {
		return validationErrorJSON(c, err)
	}

	if err := h.attempts.CheckLogin(c.Context(), meetingID, req.MemberID); err != nil {
		if errors.Is(err, service.ErrTooManyAttempts) {
			return errorJSON(c, fiber.StatusTooManyRequests, "Too many login attempts. Please try again later.")
		}
		h.telemetry.Logger().ErrorContext(c.Context(), "Rate limiter failed", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	meeting, _, err := h.repo.GetMeeting(c.Context(), meetingID)
	if err != nil {
		if errors.Is(err, repository.ErrMeetingNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "No such meeting.")
		}
		h.telemetry.Logger().ErrorContext(c.Context(), "Failed to get meeting", "meeting_id", meetingID, "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	member, ok := meeting.MemberByID(req.MemberID)
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "No such user.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.HashedPassword), []byte(req.Password)); err != nil {
		return errorJSON(c, fiber.StatusForbidden, "Incorrect password.")
	}

	if err := h.attempts.ResetLogin(c.Context(), meetingID, req.MemberID); err != nil {
		h.telemetry.Logger().ErrorContext(c.Context(), "Failed to reset login attempts", "error", err)
	}

	h.telemetry.Logger().InfoContext(c.Context(), "Member logged in",
		"meeting_id", meetingID, "member_id", req.MemberID, "ip", c.IP())

	h.setAuthCookie(c, meetingID, member.AuthCookie)
	return c.SendStatus(fiber.StatusOK)
}
