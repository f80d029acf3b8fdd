package users

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// user roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

// represents a registered account
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       *string   `json:"avatar"`
	Role         string    `json:"role"`
	Confirmed    bool      `json:"confirmed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// contains the fields required to insert a new user
type Draft struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// Patch lists the updatable user fields. Only non-nil fields are
// applied; anything else on the row is left untouched.
type Patch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Avatar       *string
	Role         *string
}
