package users

import (
	"context"
	"io"

	"codeberg.org/rolodex/server/rolodex/users"
)

// UserStore is the slice of the user repository the profile handlers
// depend on
type UserStore interface {
	Update(ctx context.Context, id int64, patch users.Patch) (*users.User, error)
}

// AvatarStore uploads an avatar image and returns its public URL
type AvatarStore interface {
	Upload(ctx context.Context, userName string, body io.Reader, contentType string) (string, error)
}

// PasswordRequest carries a new password for the authenticated user
type PasswordRequest struct {
	Password string `json:"password" binding:"required,min=8,max=72"`
}
