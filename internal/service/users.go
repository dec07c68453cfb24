package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/rahulnair-dev/event-platform/internal/auth"
	"github.com/rahulnair-dev/event-platform/internal/model"
	"github.com/rahulnair-dev/event-platform/internal/policy"
	"github.com/rahulnair-dev/event-platform/internal/repository"
)

// UserService handles accounts: registration, login, profiles, and the
// manager-upgrade workflow.
type UserService struct {
	users     UserStore
	tokens    *auth.TokenManager
	sanitizer *bluemonday.Policy
	log       *zap.Logger
}

// NewUserService constructs a UserService with its dependencies.
func NewUserService(users UserStore, tokens *auth.TokenManager, log *zap.Logger) *UserService {
	return &UserService{
		users:     users,
		tokens:    tokens,
		sanitizer: bluemonday.StrictPolicy(),
		log:       log,
	}
}

// Register creates a new account with the user role, auto-approved, and
// returns it with a freshly minted access token.
func (s *UserService) Register(ctx context.Context, req model.RegisterUserRequest) (*model.User, string, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if !isValidEmail(req.Email) {
		return nil, "", fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	if req.FullName == "" {
		return nil, "", fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Create(ctx, req.Email, hashed, req.FullName, req.Phone)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("user registered", zap.Int64("user_id", user.ID))

	token, err := s.tokens.Mint(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email and password and mints an access token.
// Unknown email and wrong password are indistinguishable to the caller;
// a deactivated account is reported distinctly once the password matches.
func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPassword(req.Password, user.HashedPassword) {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrInactiveAccount
	}

	token, err := s.tokens.Mint(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	s.log.Info("user logged in", zap.Int64("user_id", user.ID))
	return user, token, nil
}

// Get returns a single account by id.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns all accounts, paginated. Admin only.
func (s *UserService) List(ctx context.Context, p model.Principal, skip, limit int) ([]model.User, error) {
	if !policy.CanManageUsers(p) {
		return nil, ErrForbidden
	}
	return s.users.List(ctx, skip, normalizeLimit(limit))
}

// UpdateProfile applies a partial profile update to the caller's own
// account. Every free-text field is stripped of any HTML.
func (s *UserService) UpdateProfile(ctx context.Context, p model.Principal, req model.UpdateProfileRequest) (*model.User, error) {
	for _, field := range []*string{
		req.FullName, req.Phone, req.City, req.State, req.Country,
		req.LinkedinURL, req.YoutubeURL, req.FacebookURL, req.TwitterURL,
		req.InstagramURL, req.AboutMe, req.Gender, req.DOB,
	} {
		s.sanitize(field)
	}
	return s.users.UpdateProfile(ctx, p.UserID, req)
}

// RequestUpgrade switches the caller to an unapproved manager pending admin
// review. Re-requesting while already pending just resets the request
// fields; there is no state-machine guard against it.
func (s *UserService) RequestUpgrade(ctx context.Context, p model.Principal, req model.UpgradeRequest) (*model.User, error) {
	req.AdditionalDetails = s.sanitizer.Sanitize(req.AdditionalDetails)
	user, err := s.users.RequestUpgrade(ctx, p.UserID, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("manager upgrade requested", zap.Int64("user_id", p.UserID))
	return user, nil
}

// MyManagerRequest returns the caller's account when a manager request
// exists, ErrNotFound otherwise.
func (s *UserService) MyManagerRequest(ctx context.Context, p model.Principal) (*model.User, error) {
	user, err := s.users.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleManager {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

// PendingManagers returns managers awaiting a decision. Admin only.
func (s *UserService) PendingManagers(ctx context.Context, p model.Principal) ([]model.User, error) {
	if !policy.CanManageUsers(p) {
		return nil, ErrForbidden
	}
	return s.users.ListPendingManagers(ctx)
}

// ApproveManager approves a pending manager, clearing any prior rejection
// reason and storing the admin's comment. Admin only; the target must hold
// the manager role.
func (s *UserService) ApproveManager(ctx context.Context, p model.Principal, targetID int64, comment string) (*model.User, error) {
	if err := s.checkManagerTarget(ctx, p, targetID); err != nil {
		return nil, err
	}
	var c *string
	if comment = strings.TrimSpace(comment); comment != "" {
		c = &comment
	}
	user, err := s.users.ApproveManager(ctx, targetID, c)
	if err != nil {
		return nil, err
	}
	s.log.Info("manager approved", zap.Int64("user_id", targetID), zap.Int64("admin_id", p.UserID))
	return user, nil
}

// RejectManager rejects a pending (or previously approved) manager with a
// required reason. Admin only; the target must hold the manager role.
func (s *UserService) RejectManager(ctx context.Context, p model.Principal, targetID int64, reason string) (*model.User, error) {
	if err := s.checkManagerTarget(ctx, p, targetID); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", ErrInvalidInput)
	}
	user, err := s.users.RejectManager(ctx, targetID, reason)
	if err != nil {
		return nil, err
	}
	s.log.Info("manager rejected", zap.Int64("user_id", targetID), zap.Int64("admin_id", p.UserID))
	return user, nil
}

func (s *UserService) checkManagerTarget(ctx context.Context, p model.Principal, targetID int64) error {
	if !policy.CanManageUsers(p) {
		return ErrForbidden
	}
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role != model.RoleManager {
		return ErrNotManager
	}
	return nil
}

// DeactivateUser soft-disables an account. Admin only, never self.
func (s *UserService) DeactivateUser(ctx context.Context, p model.Principal, targetID int64) (*model.User, error) {
	if !policy.CanManageUsers(p) {
		return nil, ErrForbidden
	}
	if !policy.CanDeactivateUser(p, targetID) {
		return nil, fmt.Errorf("%w: cannot deactivate your own account", ErrInvalidInput)
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return nil, err
	}
	user, err := s.users.Deactivate(ctx, targetID)
	if err != nil {
		return nil, err
	}
	s.log.Info("user deactivated", zap.Int64("user_id", targetID), zap.Int64("admin_id", p.UserID))
	return user, nil
}

func (s *UserService) sanitize(field *string) {
	if field != nil {
		*field = s.sanitizer.Sanitize(*field)
	}
}

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}

// normalizeLimit clamps pagination limits to a sane window.
func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
