package service

import (
	"context"

	"github.com/rahulnair-dev/event-platform/internal/model"
)

// The store interfaces are the persistence surface the services consume.
// internal/repository implements them over pgx; tests substitute in-memory
// fakes.

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, email, hashedPassword, fullName, phone string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, skip, limit int) ([]model.User, error)
	ListPendingManagers(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id int64, req model.UpdateProfileRequest) (*model.User, error)
	RequestUpgrade(ctx context.Context, id int64, req model.UpgradeRequest) (*model.User, error)
	ApproveManager(ctx context.Context, id int64, comment *string) (*model.User, error)
	RejectManager(ctx context.Context, id int64, reason string) (*model.User, error)
	Deactivate(ctx context.Context, id int64) (*model.User, error)
}

// EventStore persists events.
type EventStore interface {
	Create(ctx context.Context, organizerID int64, req model.CreateEventRequest) (*model.Event, error)
	ListPublished(ctx context.Context, skip, limit int) ([]model.Event, error)
	GetByID(ctx context.Context, id int64) (*model.Event, error)
	Update(ctx context.Context, id int64, req model.UpdateEventRequest) (*model.Event, error)
	Deactivate(ctx context.Context, id int64) (*model.Event, error)
	Delete(ctx context.Context, id int64) error
}

// RegistrationStore persists registrations. Register and Approve carry the
// transactional capacity/uniqueness checks.
type RegistrationStore interface {
	Register(ctx context.Context, eventID, userID int64) (*model.Registration, error)
	Approve(ctx context.Context, id int64) (*model.Registration, error)
	Reject(ctx context.Context, id int64, reason string) (*model.Registration, error)
	Cancel(ctx context.Context, id int64) (*model.Registration, error)
	GetByID(ctx context.Context, id int64) (*model.Registration, error)
	ListByEvent(ctx context.Context, eventID int64) ([]model.Registration, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Registration, error)
}
