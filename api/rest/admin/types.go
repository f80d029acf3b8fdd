package admin

import (
	"context"

	"codeberg.org/rolodex/server/rolodex/users"
)

// UserStore is the slice of the user repository the admin handlers
// depend on
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*users.User, error)
	Update(ctx context.Context, id int64, patch users.Patch) (*users.User, error)
	Delete(ctx context.Context, id int64) error
}

// RoleRequest assigns a role to a user
type RoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}
