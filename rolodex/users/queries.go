package users

const (
	userColumns = `id, name, email, password, avatar, role, confirmed, created_at, updated_at`

	queryFindByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	queryFindByName = `
		SELECT ` + userColumns + `
		FROM users
		WHERE name = $1
	`

	queryFindByEmail = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	queryInsert = `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns + `
	`

	// non-null arguments overwrite, null arguments keep the current value
	queryUpdate = `
		UPDATE users
		SET name = COALESCE($2, name),
			email = COALESCE($3, email),
			password = COALESCE($4, password),
			avatar = COALESCE($5, avatar),
			role = COALESCE($6, role),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns + `
	`

	queryDelete = `
		DELETE FROM users
		WHERE id = $1
	`

	queryConfirmEmail = `
		UPDATE users
		SET confirmed = TRUE, updated_at = NOW()
		WHERE email = $1
	`
)
