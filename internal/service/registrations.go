package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rahulnair-dev/event-platform/internal/model"
	"github.com/rahulnair-dev/event-platform/internal/policy"
)

// RegistrationService orchestrates the registration workflow: attendees
// register, organizers (or admins) approve and reject.
type RegistrationService struct {
	registrations RegistrationStore
	events        EventStore
	log           *zap.Logger
}

// NewRegistrationService constructs a RegistrationService with its
// dependencies.
func NewRegistrationService(registrations RegistrationStore, events EventStore, log *zap.Logger) *RegistrationService {
	return &RegistrationService{registrations: registrations, events: events, log: log}
}

// Register creates a pending registration for the caller. The store runs
// the whole admission sequence in one transaction: event existence,
// organizer self-registration, approved count against capacity, prior
// registration of any status, and confirmation-id minting.
func (s *RegistrationService) Register(ctx context.Context, p model.Principal, eventID int64) (*model.Registration, error) {
	reg, err := s.registrations.Register(ctx, eventID, p.UserID)
	if err != nil {
		return nil, err
	}
	s.log.Info("registration created",
		zap.Int64("registration_id", reg.ID),
		zap.Int64("event_id", eventID),
		zap.Int64("user_id", p.UserID),
		zap.String("confirmation_id", reg.ConfirmationID),
	)
	return reg, nil
}

// Approve transitions a registration to approved and clears any prior
// rejection reason. Organizer or admin. Capacity is re-validated by the
// store, so an overbooked pending waitlist can never push the approved
// count past capacity.
func (s *RegistrationService) Approve(ctx context.Context, p model.Principal, regID int64) (*model.Registration, error) {
	if err := s.authorizeReview(ctx, p, regID); err != nil {
		return nil, err
	}
	reg, err := s.registrations.Approve(ctx, regID)
	if err != nil {
		return nil, err
	}
	s.log.Info("registration approved",
		zap.Int64("registration_id", regID),
		zap.Int64("reviewer_id", p.UserID),
	)
	return reg, nil
}

// Reject transitions a registration to rejected. Organizer or admin; a
// non-empty reason is required.
func (s *RegistrationService) Reject(ctx context.Context, p model.Principal, regID int64, reason string) (*model.Registration, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", ErrInvalidInput)
	}
	if err := s.authorizeReview(ctx, p, regID); err != nil {
		return nil, err
	}
	reg, err := s.registrations.Reject(ctx, regID, reason)
	if err != nil {
		return nil, err
	}
	s.log.Info("registration rejected",
		zap.Int64("registration_id", regID),
		zap.Int64("reviewer_id", p.UserID),
	)
	return reg, nil
}

// Cancel withdraws the caller's own pending or approved registration.
// Cancelling an approved registration frees its capacity slot.
func (s *RegistrationService) Cancel(ctx context.Context, p model.Principal, regID int64) (*model.Registration, error) {
	reg, err := s.registrations.GetByID(ctx, regID)
	if err != nil {
		return nil, err
	}
	if !policy.CanCancelRegistration(p, reg) {
		return nil, ErrForbidden
	}
	if reg.Status != model.RegistrationPending && reg.Status != model.RegistrationApproved {
		return nil, fmt.Errorf("%w: cannot cancel a %s registration", ErrInvalidInput, reg.Status)
	}
	reg, err = s.registrations.Cancel(ctx, regID)
	if err != nil {
		return nil, err
	}
	s.log.Info("registration cancelled",
		zap.Int64("registration_id", regID),
		zap.Int64("user_id", p.UserID),
	)
	return reg, nil
}

// ListForEvent returns every registration for the event, any status.
// Organizer or admin.
func (s *RegistrationService) ListForEvent(ctx context.Context, p model.Principal, eventID int64) ([]model.Registration, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageEvent(p, event) {
		return nil, ErrForbidden
	}
	return s.registrations.ListByEvent(ctx, eventID)
}

// ListMine returns every registration the caller has made, any status.
func (s *RegistrationService) ListMine(ctx context.Context, p model.Principal) ([]model.Registration, error) {
	return s.registrations.ListByUser(ctx, p.UserID)
}

// authorizeReview checks that the principal may decide the registration:
// the event's organizer or an admin.
func (s *RegistrationService) authorizeReview(ctx context.Context, p model.Principal, regID int64) error {
	reg, err := s.registrations.GetByID(ctx, regID)
	if err != nil {
		return err
	}
	event, err := s.events.GetByID(ctx, reg.EventID)
	if err != nil {
		return err
	}
	if !policy.CanManageEvent(p, event) {
		return ErrForbidden
	}
	return nil
}
