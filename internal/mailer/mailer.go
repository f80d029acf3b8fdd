// Package mailer delivers account emails over SMTP. Messages embed a
// signed email token so the confirmation link round-trips back to the
// API without server-side state.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
	"golang.org/x/time/rate"

	"codeberg.org/rolodex/server/internal/auth"
	"codeberg.org/rolodex/server/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// outbound throttle, most SMTP relays reject bursts well below this
var sendLimiter = rate.NewLimiter(5, 10)

// subjects per message kind
const (
	subjectConfirmation = "Confirm your email"
	subjectReset        = "Reset your password"
)

// Mailer renders and sends account emails
type Mailer struct {
	client    *mail.Client
	codec     *auth.TokenCodec
	templates *template.Template
	from      string
	fromName  string
}

// template payload shared by both message kinds
type messageData struct {
	Username string
	Host     string
	Token    string
}

// creates a mailer from the mail section of the config
func New(cfg *config.Config, codec *auth.TokenCodec) (*Mailer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	opts := []mail.Option{
		mail.WithPort(cfg.MailPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}

	if cfg.MailUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.MailUsername),
			mail.WithPassword(cfg.MailPassword),
		)
	}

	client, err := mail.NewClient(cfg.MailServer, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &Mailer{
		client:    client,
		codec:     codec,
		templates: templates,
		from:      cfg.MailFrom,
		fromName:  cfg.MailFromName,
	}, nil
}

// Send issues a fresh email token for the recipient and delivers the
// message for the given kind
func (m *Mailer) Send(ctx context.Context, recipient, displayName, baseURL string, kind auth.MessageKind) error {
	if err := sendLimiter.Wait(ctx); err != nil {
		return err
	}

	token, err := m.codec.IssueEmailToken(recipient)
	if err != nil {
		return fmt.Errorf("failed to issue email token: %w", err)
	}

	subject, templateName, err := messageParts(kind)
	if err != nil {
		return err
	}

	var body bytes.Buffer

	err = m.templates.ExecuteTemplate(&body, templateName, messageData{
		Username: displayName,
		Host:     baseURL,
		Token:    token,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(m.fromName, m.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}

	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	return m.client.DialAndSendWithContext(ctx, msg)
}

func messageParts(kind auth.MessageKind) (subject, templateName string, err error) {
	switch kind {
	case auth.KindConfirmation:
		return subjectConfirmation, "confirm_email.html", nil
	case auth.KindReset:
		return subjectReset, "reset_password.html", nil
	default:
		return "", "", fmt.Errorf("unknown message kind: %q", kind)
	}
}
