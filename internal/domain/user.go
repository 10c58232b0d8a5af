package domain

import "time"

// UserRole enumerates the two participant roles.
type UserRole string

const (
	RoleCandidate   UserRole = "candidate"
	RoleInterviewer UserRole = "interviewer"
)

// Valid reports whether the role is a known value.
func (r UserRole) Valid() bool {
	return r == RoleCandidate || r == RoleInterviewer
}

// User is the directory entry for a participant. ExternalID is the
// correlation key with the identity provider; interviews reference users by
// it, never by document id.
type User struct {
	ID         string
	ExternalID string
	Name       string
	Email      string
	Image      *string
	Role       UserRole
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
