package domain

import (
	"context"
	"errors"
	"slices"
	"time"
)

// ErrUserNotFound is returned when a user lookup finds nothing.
var ErrUserNotFound = errors.New("user not found")

// RoleAdmin is the platform administrator role claim.
const RoleAdmin = "admin"

// User is the subset of a user account this service reads (email recipients).
// swagger:model User
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID string
	Roles  []string
}

// IsAdmin reports whether the principal holds the platform administrator role.
func (p Principal) IsAdmin() bool {
	return slices.Contains(p.Roles, RoleAdmin)
}

// CanManage reports whether the principal may administer registrations of event.
func (p Principal) CanManage(event *Event) bool {
	return p.IsAdmin() || (p.UserID != "" && p.UserID == event.OwnerID)
}

// TokenVerifier verifies a token and returns the authenticated principal.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}

// UserRepository defines the user lookups needed for notifications.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}
