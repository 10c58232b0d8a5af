package dto

import "time"

// SyncUserRequest payload for the post-sign-in sync.
type SyncUserRequest struct {
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	ExternalID string  `json:"external_id" validate:"required"`
	Image      *string `json:"image,omitempty"`
}

// OnboardUserRequest payload for explicit role onboarding.
type OnboardUserRequest struct {
	Name       string  `json:"name" validate:"required"`
	Email      string  `json:"email" validate:"required,email"`
	ExternalID string  `json:"external_id" validate:"required"`
	Image      *string `json:"image,omitempty"`
	Role       string  `json:"role" validate:"required,oneof=candidate interviewer"`
}

// UserResponse is the directory entry shape returned to clients.
type UserResponse struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Image      *string   `json:"image,omitempty"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}
