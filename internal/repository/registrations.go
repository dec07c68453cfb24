package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahulnair-dev/event-platform/internal/model"
)

const registrationColumns = `id, user_id, event_id, status, registration_date,
	confirmation_id, attended, rejection_reason`

// confirmationAttempts bounds the retry loop for confirmation-id
// generation. The unique constraint on the column is the real guarantee;
// the bound just keeps a pathological collision storm from spinning.
const confirmationAttempts = 10

// RegistrationRepository handles persistence for registrations.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func scanRegistration(row pgx.Row) (*model.Registration, error) {
	var reg model.Registration
	err := row.Scan(
		&reg.ID, &reg.UserID, &reg.EventID, &reg.Status, &reg.RegistrationDate,
		&reg.ConfirmationID, &reg.Attended, &reg.RejectionReason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	return &reg, nil
}

// NewConfirmationID builds a candidate confirmation code for an event:
// EVT-{event id}-{six random digits, zero padded}.
func NewConfirmationID(eventID int64) string {
	return fmt.Sprintf("EVT-%d-%06d", eventID, rand.Intn(1_000_000))
}

// Register performs a concurrency-safe registration inside a transaction.
//
// Two registrations racing for the last approved slot, or colliding on a
// confirmation id, must not both succeed. SELECT ... FOR UPDATE on the
// event row serialises concurrent attempts per event, so the capacity
// count, the duplicate check, and the insert below all see a consistent
// snapshot. The unique indexes on (user_id, event_id) and confirmation_id
// back these checks at the schema level.
//
// Capacity counts only approved registrations: pending requests may
// overbook the event and wait for the organizer's decision.
func (r *RegistrationRepository) Register(ctx context.Context, eventID, userID int64) (*model.Registration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock the event row for the duration of the transaction.
	var organizerID int64
	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT organizer_id, capacity FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&organizerID, &capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrNotFound
		}
		return nil, err
	}

	if userID == organizerID {
		err = ErrOwnEvent
		return nil, err
	}

	var approved int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = 'approved'`,
		eventID,
	).Scan(&approved)
	if err != nil {
		return nil, fmt.Errorf("count approved: %w", err)
	}
	if approved >= capacity {
		err = ErrCapacityExceeded
		return nil, err
	}

	// Any prior registration blocks re-registration, whatever its status.
	var existing int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	).Scan(&existing)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if existing > 0 {
		err = ErrAlreadyRegistered
		return nil, err
	}

	confirmationID, err := r.mintConfirmationID(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx,
		`INSERT INTO registrations (user_id, event_id, status, confirmation_id)
		 VALUES ($1, $2, 'pending', $3)
		 RETURNING `+registrationColumns,
		userID, eventID, confirmationID,
	)
	var reg *model.Registration
	reg, err = scanRegistration(row)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reg, nil
}

// mintConfirmationID generates a confirmation id that is not yet taken,
// giving up after a bounded number of attempts.
func (r *RegistrationRepository) mintConfirmationID(ctx context.Context, tx pgx.Tx, eventID int64) (string, error) {
	for attempt := 0; attempt < confirmationAttempts; attempt++ {
		candidate := NewConfirmationID(eventID)
		var taken bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM registrations WHERE confirmation_id = $1)`,
			candidate,
		).Scan(&taken)
		if err != nil {
			return "", fmt.Errorf("check confirmation id: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrConfirmationExhausted
}

// Approve transitions the registration to approved and clears any prior
// rejection reason. Capacity is re-validated under the event row lock:
// the pending waitlist may overbook, the approved set never does.
// Cancelled registrations stay cancelled.
func (r *RegistrationRepository) Approve(ctx context.Context, id int64) (*model.Registration, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var eventID int64
	var status model.RegistrationStatus
	err = tx.QueryRow(ctx,
		`SELECT event_id, status FROM registrations WHERE id = $1`, id,
	).Scan(&eventID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrNotFound
		}
		return nil, err
	}
	if status == model.RegistrationCancelled {
		err = ErrRegistrationClosed
		return nil, err
	}

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`, eventID,
	).Scan(&capacity)
	if err != nil {
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	// Count other approved registrations so re-approving is idempotent.
	var approved int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations
		 WHERE event_id = $1 AND status = 'approved' AND id <> $2`,
		eventID, id,
	).Scan(&approved)
	if err != nil {
		return nil, fmt.Errorf("count approved: %w", err)
	}
	if approved >= capacity {
		err = ErrCapacityExceeded
		return nil, err
	}

	row := tx.QueryRow(ctx,
		`UPDATE registrations SET status = 'approved', rejection_reason = NULL
		 WHERE id = $1 AND status <> 'cancelled'
		 RETURNING `+registrationColumns,
		id,
	)
	var reg *model.Registration
	reg, err = scanRegistration(row)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reg, nil
}

// Reject transitions the registration to rejected and stores the reason.
// Cancelled registrations stay cancelled.
func (r *RegistrationRepository) Reject(ctx context.Context, id int64, reason string) (*model.Registration, error) {
	var status model.RegistrationStatus
	err := r.db.QueryRow(ctx,
		`SELECT status FROM registrations WHERE id = $1`, id,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load registration: %w", err)
	}
	if status == model.RegistrationCancelled {
		return nil, ErrRegistrationClosed
	}

	row := r.db.QueryRow(ctx,
		`UPDATE registrations SET status = 'rejected', rejection_reason = $2
		 WHERE id = $1 AND status <> 'cancelled'
		 RETURNING `+registrationColumns,
		id, reason,
	)
	return scanRegistration(row)
}

// Cancel transitions a pending or approved registration to cancelled.
func (r *RegistrationRepository) Cancel(ctx context.Context, id int64) (*model.Registration, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE registrations SET status = 'cancelled'
		 WHERE id = $1 AND status IN ('pending', 'approved')
		 RETURNING `+registrationColumns,
		id,
	)
	return scanRegistration(row)
}

// GetByID returns a single registration or ErrNotFound.
func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*model.Registration, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id,
	)
	return scanRegistration(row)
}

// ListByEvent returns all registrations for an event, any status.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID int64) ([]model.Registration, error) {
	return r.list(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE event_id = $1 ORDER BY registration_date ASC`,
		eventID,
	)
}

// ListByUser returns all registrations made by a user, any status.
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Registration, error) {
	return r.list(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE user_id = $1 ORDER BY registration_date ASC`,
		userID,
	)
}

func (r *RegistrationRepository) list(ctx context.Context, query string, arg any) ([]model.Registration, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}
