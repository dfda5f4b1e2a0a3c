package api

import (
	"context"
	"errors"

	"makemeet/internal/model"
	"makemeet/internal/monitoring"
	"makemeet/internal/repository"
	"makemeet/internal/service"
	"makemeet/internal/validator"

	"github.com/gofiber/fiber/v2"
)

// Errors surfaced by meeting mutations. Kept distinct so handlers can map
// "doesn't exist" and "exists but you can't touch it" to different statuses.
var (
	errNoSuchMember     = errors.New("no such member")
	errNotAuthenticated = errors.New("not authenticated for this meeting")
	errNotAuthorized    = errors.New("not authorized for this member")
	errUsernameTaken    = errors.New("username already taken")
)

type Handler struct {
	repo      repository.Repository
	validator *validator.Validator
	attempts  *service.RateLimiter
	telemetry monitoring.Telemetry
}

func NewHandler(repo repository.Repository, v *validator.Validator, attempts *service.RateLimiter, tel monitoring.Telemetry) Handler {
	return Handler{
		repo:      repo,
		validator: v,
		attempts:  attempts,
		telemetry: tel,
	}
}

const authCookiePrefix = "auth-cookie-for-meeting-"

func authCookieName(meetingID string) string {
	return authCookiePrefix + meetingID
}

func (h *Handler) setAuthCookie(c *fiber.Ctx, meetingID, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName(meetingID),
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Strict",
	})
}

// maxUpdateRetries bounds the compare-and-swap retry loop. Conflicts only
// happen when two writers race on the same meeting document, so a couple of
// retries is plenty.
const maxUpdateRetries = 3

// mutateMeeting runs a read-modify-write cycle on one meeting document under
// optimistic concurrency: the write only commits when the version read is
// still current, and a conflicting concurrent writer triggers a re-read and
// retry instead of a silent lost update.
func (h *Handler) mutateMeeting(ctx context.Context, id string, mutate func(*model.Meeting) error) (model.Meeting, error) {
	var lastErr error
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		meeting, version, err := h.repo.GetMeeting(ctx, id)
		if err != nil {
			return model.Meeting{}, err
		}

		if err := mutate(&meeting); err != nil {
			return model.Meeting{}, err
		}

		err = h.repo.UpdateMeeting(ctx, id, meeting, version)
		if err == nil {
			return meeting, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return model.Meeting{}, err
		}
		lastErr = err
	}
	return model.Meeting{}, lastErr
}
