package auth

import (
	"context"
	"time"

	"codeberg.org/rolodex/server/rolodex/users"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload carried by signed tokens. Access tokens
// fill every field; email tokens only carry the registered claims with
// the subject set to the recipient address.
type AccessClaims struct {
	UserID int64  `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// UserDirectory is the user lookup/persistence surface the auth core
// depends on. Absent users are reported as (nil, nil), not as errors.
type UserDirectory interface {
	FindByName(ctx context.Context, name string) (*users.User, error)
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	Insert(ctx context.Context, draft users.Draft) (*users.User, error)
	ConfirmEmail(ctx context.Context, email string) error
}

// TokenCache is a TTL key-value store holding serialized identity
// snapshots keyed by the raw bearer token string
type TokenCache interface {
	Get(ctx context.Context, token string) (string, bool, error)
	Put(ctx context.Context, token, snapshot string, ttl time.Duration) error
	Invalidate(ctx context.Context, token string) error
}

// MessageKind selects the outbound email template
type MessageKind string

const (
	KindConfirmation MessageKind = "confirmation"
	KindReset        MessageKind = "reset"
)

// EmailSender delivers account emails. Implementations issue their own
// email token and embed it in the message link.
type EmailSender interface {
	Send(ctx context.Context, recipient, displayName, baseURL string, kind MessageKind) error
}
