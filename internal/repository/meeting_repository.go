package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"makemeet/internal/database"
	"makemeet/internal/model"
)

var (
	ErrMeetingNotFound = errors.New("meeting not found")
	// ErrVersionConflict reports that the meeting document changed between
	// the caller's read and its compare-and-swap write.
	ErrVersionConflict = errors.New("meeting was modified concurrently")
)

// Repository is the persistence boundary for meeting documents. Each meeting
// is one JSON document guarded by a version counter: UpdateMeeting only
// commits when the stored version still matches the one the caller read,
// which turns the blob's read-modify-write cycle into a compare-and-swap and
// closes the lost-update window.
type Repository interface {
	Migrate() error
	CreateMeeting(ctx context.Context, id string, meeting model.Meeting) error
	GetMeeting(ctx context.Context, id string) (model.Meeting, int64, error)
	UpdateMeeting(ctx context.Context, id string, meeting model.Meeting, expectedVersion int64) error
	HealthCheck(ctx context.Context) error
}

type MeetingRepository struct {
	db database.Database
}

func NewMeetingRepository(db database.Database) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) Migrate() error {
	_, err := r.db.Exec(`
	CREATE TABLE IF NOT EXISTS tbl_meeting (
		id VARCHAR(64) PRIMARY KEY,
		json_data JSONB NOT NULL,
		version BIGINT NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Backing table for the request limiter storage
	_, err = r.db.Exec(`
	CREATE TABLE IF NOT EXISTS rate_limits (
		k VARCHAR(255) PRIMARY KEY,
		v BYTEA,
		e BIGINT
	);`)
	if err != nil {
		return fmt.Errorf("failed to create rate_limits table: %w", err)
	}

	slog.Info("Database migration completed")
	return nil
}

func (r *MeetingRepository) CreateMeeting(ctx context.Context, id string, meeting model.Meeting) error {
	data, err := json.Marshal(meeting)
	if err != nil {
		return fmt.Errorf("failed to marshal meeting: %w", err)
	}
	_, err = r.db.ExecContext(ctx, "INSERT INTO tbl_meeting (id, json_data) VALUES ($1, $2)", id, data)
	if err != nil {
		return err
	}
	return nil
}

func (r *MeetingRepository) GetMeeting(ctx context.Context, id string) (model.Meeting, int64, error) {
	var (
		data    []byte
		version int64
	)
	err := r.db.QueryRowContext(ctx, "SELECT json_data, version FROM tbl_meeting WHERE id = $1", id).Scan(&data, &version)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Meeting{}, 0, ErrMeetingNotFound
		}
		return model.Meeting{}, 0, err
	}

	var meeting model.Meeting
	if err := json.Unmarshal(data, &meeting); err != nil {
		return model.Meeting{}, 0, fmt.Errorf("failed to unmarshal meeting %s: %w", id, err)
	}
	return meeting, version, nil
}

func (r *MeetingRepository) UpdateMeeting(ctx context.Context, id string, meeting model.Meeting, expectedVersion int64) error {
	data, err := json.Marshal(meeting)
	if err != nil {
		return fmt.Errorf("failed to marshal meeting: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE tbl_meeting SET json_data = $1, version = version + 1 WHERE id = $2 AND version = $3",
		data, id, expectedVersion)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 1 {
		return nil
	}

	// Distinguish a vanished meeting from a concurrent writer.
	var exists bool
	err = r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM tbl_meeting WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrMeetingNotFound
	}
	return ErrVersionConflict
}

// HealthCheck performs a simple health check on the database connection
func (r *MeetingRepository) HealthCheck(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
