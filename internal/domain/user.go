package domain

import (
	"context"
	"time"
)

// User represents a registered user. Preferences holds the free-text profile
// paragraph synthesized during onboarding; it is overwritten on re-onboarding.
// swagger:model User
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Preferences string    `json:"userPreferences"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Identity is the caller identity resolved from an externally issued token.
type Identity struct {
	Email string
	Name  string
}

// DisplayName returns the name to address the user by, falling back to email.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Email
}

// TokenVerifier verifies an identity-provider token and returns the caller identity.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	// UpsertPreferences creates the user if absent and overwrites the stored
	// preference profile otherwise, keyed by email.
	UpsertPreferences(ctx context.Context, email, preferences string) (*User, error)
}

// UserService defines read access to user profiles.
type UserService interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
}
