package contacts

const (
	contactColumns = `id, name, surname, email, phone, birthdate, notes, user_id, created_at, updated_at`

	queryList = `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1
		ORDER BY id
		OFFSET $2 LIMIT $3
	`

	queryFindByID = `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1 AND id = $2
	`

	queryInsert = `
		INSERT INTO contacts (name, surname, email, phone, birthdate, notes, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + contactColumns + `
	`

	// non-null arguments overwrite, null arguments keep the current value
	queryUpdate = `
		UPDATE contacts
		SET name = COALESCE($3, name),
			surname = COALESCE($4, surname),
			email = COALESCE($5, email),
			phone = COALESCE($6, phone),
			birthdate = COALESCE($7, birthdate),
			notes = COALESCE($8, notes),
			updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING ` + contactColumns + `
	`

	queryDelete = `
		DELETE FROM contacts
		WHERE user_id = $1 AND id = $2
		RETURNING ` + contactColumns + `
	`

	// empty filter arguments match every row
	querySearch = `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1
			AND ($2 = '' OR name ILIKE '%' || $2 || '%')
			AND ($3 = '' OR surname ILIKE '%' || $3 || '%')
			AND ($4 = '' OR email ILIKE '%' || $4 || '%')
		ORDER BY id
	`

	// compares month-day pairs so the window survives month boundaries.
	// Feb 29 birthdays only match in leap years, same as the day they occur.
	queryUpcomingBirthdays = `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1
			AND to_char(birthdate, 'MM-DD') IN (
				SELECT to_char(CURRENT_DATE + i, 'MM-DD')
				FROM generate_series(0, 7) AS i
			)
		ORDER BY to_char(birthdate, 'MM-DD')
	`
)
