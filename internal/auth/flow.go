package auth

import (
	"context"
	"time"

	"codeberg.org/rolodex/server/internal/logger"
	"codeberg.org/rolodex/server/rolodex/users"
)

// confirmation endpoint response messages
const (
	MsgConfirmed        = "You have successfully confirmed your email"
	MsgAlreadyConfirmed = "You have already confirmed your email"
)

// upper bound for a background email dispatch
const emailDispatchTimeout = 30 * time.Second

// Flow orchestrates login, registration, email confirmation and
// password reset dispatch. Stateless across requests.
type Flow struct {
	directory UserDirectory
	codec     *TokenCodec
	sender    EmailSender
	baseURL   string
	accessTTL time.Duration
}

// creates an auth flow; accessTTL <= 0 falls back to the codec default
func NewFlow(directory UserDirectory, codec *TokenCodec, sender EmailSender, baseURL string, accessTTL time.Duration) *Flow {
	return &Flow{
		directory: directory,
		codec:     codec,
		sender:    sender,
		baseURL:   baseURL,
		accessTTL: accessTTL,
	}
}

// Login checks the credentials for the display name and returns a fresh
// access token. Unknown users and wrong passwords report the same error.
func (f *Flow) Login(ctx context.Context, name, password string) (string, error) {
	user, err := f.directory.FindByName(ctx, name)
	if err != nil {
		return "", err
	}

	if user == nil {
		return "", ErrInvalidCredentials
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", err
	}

	if !ok {
		return "", ErrInvalidCredentials
	}

	if !user.Confirmed {
		return "", ErrEmailNotConfirmed
	}

	return f.codec.IssueAccessToken(user, f.accessTTL)
}

// Register creates an unconfirmed account and dispatches the
// confirmation email in the background. Duplicate checks run before any
// hashing or persistence side effect.
func (f *Flow) Register(ctx context.Context, name, email, password string) (*users.User, error) {
	existing, err := f.directory.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	existing, err = f.directory.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, ErrDuplicateName
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := f.directory.Insert(ctx, users.Draft{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	f.dispatchEmail(user.Email, user.Name, KindConfirmation)

	return user, nil
}

// ConfirmEmail decodes an email token and marks the account confirmed.
// Confirming twice is a no-op that still reports success.
func (f *Flow) ConfirmEmail(ctx context.Context, token string) (string, error) {
	claims, err := f.codec.Decode(token)
	if err != nil {
		return "", ErrInvalidToken
	}

	email := claims.Subject
	if email == "" {
		return "", ErrInvalidToken
	}

	user, err := f.directory.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if user == nil {
		return "", ErrUserNotFound
	}

	if user.Confirmed {
		return MsgAlreadyConfirmed, nil
	}

	if err := f.directory.ConfirmEmail(ctx, email); err != nil {
		return "", err
	}

	return MsgConfirmed, nil
}

// RequestPasswordReset dispatches a reset email carrying a fresh email
// token. Applying a new password is a separate authenticated operation
// that does not consume this token.
func (f *Flow) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := f.directory.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user == nil {
		return ErrUserNotFound
	}

	f.dispatchEmail(user.Email, user.Name, KindReset)

	return nil
}

// dispatches an email without blocking the request/response cycle.
// Delivery failures are logged and never surface to the caller.
func (f *Flow) dispatchEmail(email, name string, kind MessageKind) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), emailDispatchTimeout)
		defer cancel()

		if err := f.sender.Send(ctx, email, name, f.baseURL, kind); err != nil {
			logger.ErrorErr(err, "failed to send email",
				"kind", string(kind),
				"recipient", email,
			)
		}
	}()
}
