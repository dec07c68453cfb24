package model

import "time"

// RegisterUserRequest is the payload for creating a new account.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// LoginRequest is the payload for password authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly minted bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateEventRequest is the payload for publishing a new event.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
	EventType   EventType `json:"event_type"`
	Capacity    int       `json:"capacity"`
}

// UpdateEventRequest is a partial update: nil fields keep their prior value.
type UpdateEventRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	StartTime   *time.Time   `json:"start_time"`
	EndTime     *time.Time   `json:"end_time"`
	Location    *string      `json:"location"`
	EventType   *EventType   `json:"event_type"`
	Capacity    *int         `json:"capacity"`
	Status      *EventStatus `json:"status"`
}

// UpdateProfileRequest is a partial profile update: nil fields keep their
// prior value, distinct from setting a field to the empty string.
type UpdateProfileRequest struct {
	FullName     *string `json:"full_name"`
	Phone        *string `json:"phone"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Country      *string `json:"country"`
	LinkedinURL  *string `json:"linkedin_url"`
	YoutubeURL   *string `json:"youtube_url"`
	FacebookURL  *string `json:"facebook_url"`
	TwitterURL   *string `json:"twitter_url"`
	InstagramURL *string `json:"instagram_url"`
	AboutMe      *string `json:"about_me"`
	Gender       *string `json:"gender"`
	DOB          *string `json:"dob"`
}

// UpgradeRequest is the payload for requesting elevation to manager.
type UpgradeRequest struct {
	IsCompany         bool   `json:"is_company"`
	AdditionalDetails string `json:"additional_details"`
	IDProofURL        string `json:"id_proof_url"`
}

// DecisionRequest carries the comment or reason attached to an
// approve/reject decision.
type DecisionRequest struct {
	Reason string `json:"reason"`
}
