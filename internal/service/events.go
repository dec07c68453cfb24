package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rahulnair-dev/event-platform/internal/model"
	"github.com/rahulnair-dev/event-platform/internal/policy"
)

// EventService orchestrates the event catalog.
type EventService struct {
	events EventStore
	log    *zap.Logger
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events EventStore, log *zap.Logger) *EventService {
	return &EventService{events: events, log: log}
}

// Create publishes a new event owned by the caller. Managers and admins
// only. Events are created published directly; the draft status exists in
// the schema but no review flow currently feeds it.
func (s *EventService) Create(ctx context.Context, p model.Principal, req model.CreateEventRequest) (*model.Event, error) {
	if !policy.CanCreateEvent(p) {
		return nil, ErrForbidden
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrInvalidInput)
	}
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be a positive integer", ErrInvalidInput)
	}
	if req.EventType != model.EventOnline && req.EventType != model.EventOffline {
		return nil, fmt.Errorf("%w: event_type must be online or offline", ErrInvalidInput)
	}

	event, err := s.events.Create(ctx, p.UserID, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("event created",
		zap.Int64("event_id", event.ID),
		zap.Int64("organizer_id", p.UserID),
	)
	return event, nil
}

// ListPublished returns published events, paginated.
func (s *EventService) ListPublished(ctx context.Context, skip, limit int) ([]model.Event, error) {
	return s.events.ListPublished(ctx, skip, normalizeLimit(limit))
}

// Get returns a single event by id, whatever its status.
func (s *EventService) Get(ctx context.Context, id int64) (*model.Event, error) {
	return s.events.GetByID(ctx, id)
}

// Update applies a partial update. Organizer or admin.
func (s *EventService) Update(ctx context.Context, p model.Principal, id int64, req model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageEvent(p, event) {
		return nil, ErrForbidden
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be a positive integer", ErrInvalidInput)
	}
	return s.events.Update(ctx, id, req)
}

// Deactivate soft-disables an event. Admin strictly: organizers cannot
// deactivate their own events.
func (s *EventService) Deactivate(ctx context.Context, p model.Principal, id int64) (*model.Event, error) {
	if !policy.CanDeactivateEvent(p) {
		return nil, ErrForbidden
	}
	if _, err := s.events.GetByID(ctx, id); err != nil {
		return nil, err
	}
	event, err := s.events.Deactivate(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("event deactivated", zap.Int64("event_id", id), zap.Int64("admin_id", p.UserID))
	return event, nil
}

// Delete hard-removes an event. Organizer strictly: admins moderate
// through deactivation instead.
func (s *EventService) Delete(ctx context.Context, p model.Principal, id int64) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanDeleteEvent(p, event) {
		return nil, ErrForbidden
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.log.Info("event deleted", zap.Int64("event_id", id), zap.Int64("organizer_id", p.UserID))
	return event, nil
}
