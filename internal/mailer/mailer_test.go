package mailer

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/rolodex/server/internal/auth"
)

func TestMessageParts(t *testing.T) {
	subject, templateName, err := messageParts(auth.KindConfirmation)
	require.NoError(t, err)
	assert.Equal(t, subjectConfirmation, subject)
	assert.Equal(t, "confirm_email.html", templateName)

	subject, templateName, err = messageParts(auth.KindReset)
	require.NoError(t, err)
	assert.Equal(t, subjectReset, subject)
	assert.Equal(t, "reset_password.html", templateName)

	_, _, err = messageParts(auth.MessageKind("newsletter"))
	assert.Error(t, err)
}

func TestTemplatesRender(t *testing.T) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	require.NoError(t, err)

	data := messageData{
		Username: "alice",
		Host:     "http://localhost:8080",
		Token:    "header.payload.signature",
	}

	var body bytes.Buffer
	require.NoError(t, templates.ExecuteTemplate(&body, "confirm_email.html", data))
	assert.Contains(t, body.String(), "alice")
	assert.Contains(t, body.String(), "http://localhost:8080/api/v1/auth/confirm_email/header.payload.signature")

	body.Reset()
	require.NoError(t, templates.ExecuteTemplate(&body, "reset_password.html", data))
	assert.Contains(t, body.String(), "alice")
	assert.Contains(t, body.String(), "header.payload.signature")
}
