// Package contacts holds the contact book domain: the Contact model and
// its postgres repository. Every operation is scoped to the owning user.
package contacts

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides access to contact data
type Repository struct {
	db *pgxpool.Pool
}

// Contact is a single address book entry owned by a user
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Birthdate time.Time `json:"birthdate"`
	Notes     *string   `json:"notes,omitempty"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Draft carries the fields needed to create a contact
type Draft struct {
	Name      string
	Surname   string
	Email     string
	Phone     string
	Birthdate time.Time
	Notes     *string
	UserID    int64
}

// Patch carries a partial update, nil fields keep their current value
type Patch struct {
	Name      *string
	Surname   *string
	Email     *string
	Phone     *string
	Birthdate *time.Time
	Notes     *string
}

// Filter narrows a search, empty fields match everything
type Filter struct {
	Name    string
	Surname string
	Email   string
}
