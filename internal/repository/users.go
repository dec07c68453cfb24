package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rahulnair-dev/event-platform/internal/model"
)

const userColumns = `id, email, hashed_password, full_name, role, is_active, is_approved,
	rejection_reason, admin_comment, is_company, additional_details, id_proof_url,
	phone, city, state, country, linkedin_url, youtube_url, facebook_url,
	twitter_url, instagram_url, about_me, gender, dob`

// UserRepository handles persistence for user accounts.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.HashedPassword, &u.FullName, &u.Role, &u.IsActive,
		&u.IsApproved, &u.RejectionReason, &u.AdminComment, &u.IsCompany,
		&u.AdditionalDetails, &u.IDProofURL, &u.Phone, &u.City, &u.State,
		&u.Country, &u.LinkedinURL, &u.YoutubeURL, &u.FacebookURL,
		&u.TwitterURL, &u.InstagramURL, &u.AboutMe, &u.Gender, &u.DOB,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// Create inserts a new account. New accounts start as active, auto-approved
// regular users.
func (r *UserRepository) Create(ctx context.Context, email, hashedPassword, fullName, phone string) (*model.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (email, hashed_password, full_name, phone, role, is_active, is_approved)
		 VALUES ($1, $2, $3, $4, 'user', TRUE, TRUE)
		 RETURNING `+userColumns,
		email, hashedPassword, fullName, phone,
	)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// GetByEmail returns the account with the given email or ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetByID returns the account with the given id or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// List returns accounts in insertion order, paginated.
func (r *UserRepository) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id ASC OFFSET $1 LIMIT $2`,
		skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// ListPendingManagers returns managers awaiting an admin decision.
func (r *UserRepository) ListPendingManagers(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE role = 'manager' AND is_approved = FALSE
		 ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending managers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateProfile applies a partial profile update: nil fields keep their
// prior value (COALESCE against the stored column).
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, req model.UpdateProfileRequest) (*model.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users SET
			full_name     = COALESCE($2,  full_name),
			phone         = COALESCE($3,  phone),
			city          = COALESCE($4,  city),
			state         = COALESCE($5,  state),
			country       = COALESCE($6,  country),
			linkedin_url  = COALESCE($7,  linkedin_url),
			youtube_url   = COALESCE($8,  youtube_url),
			facebook_url  = COALESCE($9,  facebook_url),
			twitter_url   = COALESCE($10, twitter_url),
			instagram_url = COALESCE($11, instagram_url),
			about_me      = COALESCE($12, about_me),
			gender        = COALESCE($13, gender),
			dob           = COALESCE($14, dob)
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, req.FullName, req.Phone, req.City, req.State, req.Country,
		req.LinkedinURL, req.YoutubeURL, req.FacebookURL, req.TwitterURL,
		req.InstagramURL, req.AboutMe, req.Gender, req.DOB,
	)
	return scanUser(row)
}

// RequestUpgrade switches the account to an unapproved manager and stores
// the request details. Calling it again simply resets the request fields.
func (r *UserRepository) RequestUpgrade(ctx context.Context, id int64, req model.UpgradeRequest) (*model.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users SET
			role = 'manager', is_approved = FALSE,
			is_company = $2, additional_details = $3, id_proof_url = $4
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, req.IsCompany, req.AdditionalDetails, req.IDProofURL,
	)
	return scanUser(row)
}

// ApproveManager marks the manager approved, clears any prior rejection
// reason, and stores the admin's comment.
func (r *UserRepository) ApproveManager(ctx context.Context, id int64, comment *string) (*model.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users SET is_approved = TRUE, rejection_reason = NULL, admin_comment = $2
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, comment,
	)
	return scanUser(row)
}

// RejectManager marks the manager unapproved and stores the reason. Any
// comment from an earlier approval is cleared so the two fields never mix.
func (r *UserRepository) RejectManager(ctx context.Context, id int64, reason string) (*model.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users SET is_approved = FALSE, rejection_reason = $2, admin_comment = NULL
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, reason,
	)
	return scanUser(row)
}

// Deactivate soft-disables the account.
func (r *UserRepository) Deactivate(ctx context.Context, id int64) (*model.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users SET is_active = FALSE WHERE id = $1 RETURNING `+userColumns,
		id,
	)
	return scanUser(row)
}
