package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahulnair-dev/event-platform/internal/model"
)

const eventColumns = `id, title, description, start_time, end_time, location,
	event_type, capacity, status, is_active, organizer_id`

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

func scanEvent(row pgx.Row) (*model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime, &e.Location,
		&e.EventType, &e.Capacity, &e.Status, &e.IsActive, &e.OrganizerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &e, nil
}

// Create inserts a new event owned by the organizer. Events go straight to
// published: there is no draft review flow at present.
func (r *EventRepository) Create(ctx context.Context, organizerID int64, req model.CreateEventRequest) (*model.Event, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO events
			(title, description, start_time, end_time, location, event_type, capacity, status, is_active, organizer_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'published', TRUE, $8)
		 RETURNING `+eventColumns,
		req.Title, req.Description, req.StartTime, req.EndTime,
		req.Location, req.EventType, req.Capacity, organizerID,
	)
	return scanEvent(row)
}

// ListPublished returns published events in insertion order, paginated.
func (r *EventRepository) ListPublished(ctx context.Context, skip, limit int) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE status = 'published'
		 ORDER BY id ASC OFFSET $1 LIMIT $2`,
		skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// GetByID returns a single event or ErrNotFound. Direct lookup has no
// status filter: drafts and cancelled events stay reachable by id.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	row := r.db.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	return scanEvent(row)
}

// Update applies a partial update: nil fields keep their prior value.
func (r *EventRepository) Update(ctx context.Context, id int64, req model.UpdateEventRequest) (*model.Event, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE events SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			start_time  = COALESCE($4, start_time),
			end_time    = COALESCE($5, end_time),
			location    = COALESCE($6, location),
			event_type  = COALESCE($7, event_type),
			capacity    = COALESCE($8, capacity),
			status      = COALESCE($9, status)
		 WHERE id = $1
		 RETURNING `+eventColumns,
		id, req.Title, req.Description, req.StartTime, req.EndTime,
		req.Location, req.EventType, req.Capacity, req.Status,
	)
	return scanEvent(row)
}

// Deactivate soft-disables the event without touching its status or
// registrations.
func (r *EventRepository) Deactivate(ctx context.Context, id int64) (*model.Event, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE events SET is_active = FALSE WHERE id = $1 RETURNING `+eventColumns,
		id,
	)
	return scanEvent(row)
}

// Delete hard-removes the event. Registrations cascade at the schema level.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
