package api

import (
	"encoding/json"
	"errors"

	"makemeet/internal/availability"
	"makemeet/internal/model"
	"makemeet/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateMeeting creates a meeting from its name, bounds and timezone. The
// availability map and member roster must be empty: identities are only
// minted through the register endpoint.
func (h *Handler) CreateMeeting(c *fiber.Ctx) error {
	var meeting model.Meeting
	if err := json.Unmarshal(c.Body(), &meeting); err != nil {
		return jsonParseErrorJSON(c)
	}

	if err := h.validator.Validate(meeting); err != nil {
		return validationErrorJSON(c, err)
	}
	if err := availability.ValidateBounds(meeting.AvailabilityBounds); err != nil {
		return validationErrorJSON(c, err)
	}

	if len(meeting.Availability) != 0 || len(meeting.Members) != 0 {
		return errorJSON(c, fiber.StatusBadRequest,
			"Cannot specify availability or members when creating a meeting.")
	}

	id := uuid.NewString()
	meeting.Availability = availability.MeetingAvailability{}
	meeting.Members = []model.Member{}

	if err := h.repo.CreateMeeting(c.Context(), id, meeting); err != nil {
		h.telemetry.Logger().ErrorContext(c.Context(), "Failed to create meeting", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	h.telemetry.RecordMeetingCreated(c.Context())
	h.telemetry.Logger().InfoContext(c.Context(), "Meeting created", "meeting_id", id, "name", meeting.Name)

	c.Set("Location", "/api/meetings/"+id)
	return c.Status(fiber.StatusCreated).JSON(model.CreateMeetingResponse{ID: id})
}

// GetMeeting returns the full meeting document with member credentials
// stripped.
func (h *Handler) GetMeeting(c *fiber.Ctx) error {
	id := c.Params("meetingId")

	meeting, _, err := h.repo.GetMeeting(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMeetingNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "No such meeting.")
		}
		h.telemetry.Logger().ErrorContext(c.Context(), "Failed to get meeting", "meeting_id", id, "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	return c.JSON(meeting.APIView())
}

// AggregateResponse is the server-computed heat-map view of one meeting.
type AggregateResponse struct {
	Slots        []string          `json:"slots"`
	Counts       map[string]int    `json:"counts"`
	TotalPeople  int               `json:"totalPeople"`
	MaxAvailable int               `json:"maxAvailable"`
	MinAvailable int               `json:"minAvailable"`
	Colors       map[string]string `json:"colors"`
}

// GetAggregate expands the meeting's bounds into the slot grid and reports
// per-slot counts and gradient colors for every grid slot.
func (h *Handler) GetAggregate(c *fiber.Ctx) error {
	id := c.Params("meetingId")

	meeting, _, err := h.repo.GetMeeting(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMeetingNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "No such meeting.")
		}
		h.telemetry.Logger().ErrorContext(c.Context(), "Failed to get meeting", "meeting_id", id, "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	grid, err := availability.ExpandBounds(meeting.AvailabilityBounds)
	if err != nil {
		// Stored bounds are validated on create, so this is data corruption.
		h.telemetry.Logger().ErrorContext(c.Context(), "Stored bounds failed to expand", "meeting_id", id, "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error.")
	}

	agg := availability.Summarize(meeting.Availability, len(grid))

	colors := make(map[string]string, len(grid))
	for _, slot := range grid {
		colors[slot] = availability.GradientColor(agg.Ratio(slot)).String()
	}

	return c.JSON(AggregateResponse{
		Slots:        grid,
		Counts:       agg.Counts,
		TotalPeople:  agg.TotalPeople,
		MaxAvailable: agg.MaxAvailable,
		MinAvailable: agg.MinAvailable,
		Colors:       colors,
	})
}
