// Package model defines the core domain types for the event management platform.
package model

import "time"

// Role classifies what a user is allowed to do.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// EventType distinguishes online from in-person events.
type EventType string

const (
	EventOnline  EventType = "online"
	EventOffline EventType = "offline"
)

// EventStatus is the publication state of an event.
type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

// RegistrationStatus tracks a registration through review.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationApproved  RegistrationStatus = "approved"
	RegistrationRejected  RegistrationStatus = "rejected"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// Principal is the authenticated actor performing an operation.
type Principal struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// User is an account on the platform. IsApproved is only meaningful for
// managers: regular users are created approved, and a manager-upgrade
// request stays unapproved until an admin decides. AdminComment and
// RejectionReason are separate fields so approval comments never leak
// into rejection output.
type User struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"`
	FullName       string `json:"full_name"`
	Role           Role   `json:"role"`
	IsActive       bool   `json:"is_active"`
	IsApproved     bool   `json:"is_approved"`

	RejectionReason *string `json:"rejection_reason,omitempty"`
	AdminComment    *string `json:"admin_comment,omitempty"`

	// Manager-upgrade request fields.
	IsCompany         bool    `json:"is_company"`
	AdditionalDetails *string `json:"additional_details,omitempty"`
	IDProofURL        *string `json:"id_proof_url,omitempty"`

	// Profile fields, opaque to the core workflows.
	Phone        *string `json:"phone,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Country      *string `json:"country,omitempty"`
	LinkedinURL  *string `json:"linkedin_url,omitempty"`
	YoutubeURL   *string `json:"youtube_url,omitempty"`
	FacebookURL  *string `json:"facebook_url,omitempty"`
	TwitterURL   *string `json:"twitter_url,omitempty"`
	InstagramURL *string `json:"instagram_url,omitempty"`
	AboutMe      *string `json:"about_me,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	DOB          *string `json:"dob,omitempty"`
}

// Principal derives the authorization view of the user.
func (u *User) Principal() Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}

// Event is a bookable event owned by exactly one organizer.
type Event struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	Location    string      `json:"location"`
	EventType   EventType   `json:"event_type"`
	Capacity    int         `json:"capacity"`
	Status      EventStatus `json:"status"`
	IsActive    bool        `json:"is_active"`
	OrganizerID int64       `json:"organizer_id"`
}

// Registration links one user to one event. ConfirmationID is globally
// unique. RejectionReason is set only while the registration is rejected.
type Registration struct {
	ID               int64              `json:"id"`
	UserID           int64              `json:"user_id"`
	EventID          int64              `json:"event_id"`
	Status           RegistrationStatus `json:"status"`
	RegistrationDate time.Time          `json:"registration_date"`
	ConfirmationID   string             `json:"confirmation_id"`
	Attended         bool               `json:"attended"`
	RejectionReason  *string            `json:"rejection_reason,omitempty"`
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
