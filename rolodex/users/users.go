package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new user repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// finds a user by their ID, returns nil when no row matches
func (r *Repository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.queryOne(ctx, queryFindByID, id)
}

// finds a user by their unique display name, returns nil when no row matches
func (r *Repository) FindByName(ctx context.Context, name string) (*User, error) {
	return r.queryOne(ctx, queryFindByName, name)
}

// finds a user by their email address, returns nil when no row matches
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.queryOne(ctx, queryFindByEmail, email)
}

// inserts a new unconfirmed user
func (r *Repository) Insert(ctx context.Context, draft Draft) (*User, error) {
	role := draft.Role
	if role == "" {
		role = RoleUser
	}

	var user User

	err := r.db.QueryRow(ctx, queryInsert,
		draft.Name,
		draft.Email,
		draft.PasswordHash,
		role,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Avatar,
		&user.Role,
		&user.Confirmed,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// applies the non-nil fields of the patch to the user row
func (r *Repository) Update(ctx context.Context, id int64, patch Patch) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, queryUpdate,
		id,
		patch.Name,
		patch.Email,
		patch.PasswordHash,
		patch.Avatar,
		patch.Role,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Avatar,
		&user.Role,
		&user.Confirmed,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}

// removes a user, contacts cascade via the foreign key
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, queryDelete, id)
	return err
}

// marks the account with this email as confirmed
func (r *Repository) ConfirmEmail(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, queryConfirmEmail, email)
	return err
}

func (r *Repository) queryOne(ctx context.Context, query string, arg any) (*User, error) {
	var user User

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Avatar,
		&user.Role,
		&user.Confirmed,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &user, nil
}
