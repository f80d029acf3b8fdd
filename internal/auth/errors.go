package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when the name/password pair does not match
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrEmailNotConfirmed is returned when a login targets an unconfirmed account
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// ErrDuplicateEmail is returned when a registration reuses an email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateName is returned when a registration reuses a display name
	ErrDuplicateName = errors.New("user with this username already exists")

	// ErrInvalidToken covers tampered, malformed and expired tokens alike.
	// Callers must not rely on telling those cases apart.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnauthorized is the single failure the resolver reports, deliberately
	// carrying no detail about which check rejected the request
	ErrUnauthorized = errors.New("could not validate credentials")

	// ErrUserNotFound is returned when confirm/reset targets an unknown account
	ErrUserNotFound = errors.New("user not found")

	// ErrHashFormat is returned when a stored password digest is malformed
	ErrHashFormat = errors.New("malformed password hash")
)
