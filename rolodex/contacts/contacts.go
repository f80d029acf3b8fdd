package contacts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new contact repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// lists a page of the user's contacts ordered by ID
func (r *Repository) List(ctx context.Context, userID int64, skip, limit int) ([]Contact, error) {
	rows, err := r.db.Query(ctx, queryList, userID, skip, limit)
	if err != nil {
		return nil, err
	}

	return collect(rows)
}

// finds one of the user's contacts by ID, returns nil when no row matches
func (r *Repository) FindByID(ctx context.Context, userID, id int64) (*Contact, error) {
	contact, err := scanOne(r.db.QueryRow(ctx, queryFindByID, userID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return contact, nil
}

// inserts a new contact for the owner named in the draft
func (r *Repository) Insert(ctx context.Context, draft Draft) (*Contact, error) {
	return scanOne(r.db.QueryRow(ctx, queryInsert,
		draft.Name,
		draft.Surname,
		draft.Email,
		draft.Phone,
		draft.Birthdate,
		draft.Notes,
		draft.UserID,
	))
}

// applies the non-nil fields of the patch, returns nil when the contact
// does not exist or belongs to another user
func (r *Repository) Update(ctx context.Context, userID, id int64, patch Patch) (*Contact, error) {
	contact, err := scanOne(r.db.QueryRow(ctx, queryUpdate,
		userID,
		id,
		patch.Name,
		patch.Surname,
		patch.Email,
		patch.Phone,
		patch.Birthdate,
		patch.Notes,
	))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return contact, nil
}

// removes one of the user's contacts, returning the deleted row or nil
// when nothing matched
func (r *Repository) Delete(ctx context.Context, userID, id int64) (*Contact, error) {
	contact, err := scanOne(r.db.QueryRow(ctx, queryDelete, userID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return contact, nil
}

// searches the user's contacts by case-insensitive substring match
func (r *Repository) Search(ctx context.Context, userID int64, filter Filter) ([]Contact, error) {
	rows, err := r.db.Query(ctx, querySearch, userID, filter.Name, filter.Surname, filter.Email)
	if err != nil {
		return nil, err
	}

	return collect(rows)
}

// lists the user's contacts whose birthday falls within the next week
func (r *Repository) UpcomingBirthdays(ctx context.Context, userID int64) ([]Contact, error) {
	rows, err := r.db.Query(ctx, queryUpcomingBirthdays, userID)
	if err != nil {
		return nil, err
	}

	return collect(rows)
}

func scanOne(row pgx.Row) (*Contact, error) {
	var contact Contact

	err := row.Scan(
		&contact.ID,
		&contact.Name,
		&contact.Surname,
		&contact.Email,
		&contact.Phone,
		&contact.Birthdate,
		&contact.Notes,
		&contact.UserID,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func collect(rows pgx.Rows) ([]Contact, error) {
	defer rows.Close()

	contacts := []Contact{}

	for rows.Next() {
		var contact Contact

		err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Surname,
			&contact.Email,
			&contact.Phone,
			&contact.Birthdate,
			&contact.Notes,
			&contact.UserID,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}
