package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/rolodex/server/internal/auth"
	"codeberg.org/rolodex/server/rolodex/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// in-memory auth.UserDirectory
type memoryDirectory struct {
	mu     sync.Mutex
	users  map[int64]*users.User
	nextID int64
}

func newMemoryDirectory() *memoryDirectory {
	return &memoryDirectory{users: map[int64]*users.User{}, nextID: 1}
}

func (d *memoryDirectory) add(user *users.User) *users.User {
	d.mu.Lock()
	defer d.mu.Unlock()

	if user.ID == 0 {
		user.ID = d.nextID
		d.nextID++
	}

	clone := *user
	d.users[clone.ID] = &clone

	return &clone
}

func (d *memoryDirectory) FindByName(_ context.Context, name string) (*users.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Name == name {
			clone := *u
			return &clone, nil
		}
	}

	return nil, nil
}

func (d *memoryDirectory) FindByEmail(_ context.Context, email string) (*users.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}

	return nil, nil
}

func (d *memoryDirectory) Insert(_ context.Context, draft users.Draft) (*users.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	user := &users.User{
		ID:           d.nextID,
		Name:         draft.Name,
		Email:        draft.Email,
		PasswordHash: draft.PasswordHash,
		Role:         users.RoleUser,
	}
	d.nextID++
	d.users[user.ID] = user

	clone := *user

	return &clone, nil
}

func (d *memoryDirectory) ConfirmEmail(_ context.Context, email string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, u := range d.users {
		if u.Email == email {
			u.Confirmed = true
		}
	}

	return nil
}

// EmailSender that swallows every message
type silentSender struct{}

func (silentSender) Send(context.Context, string, string, string, auth.MessageKind) error {
	return nil
}

const testSecret = "test-secret-key-for-testing"

func testSetup(t *testing.T) (*gin.Engine, *memoryDirectory, *auth.TokenCodec) {
	t.Helper()

	codec, err := auth.NewTokenCodec(testSecret, "HS256")
	require.NoError(t, err)

	directory := newMemoryDirectory()
	flow := auth.NewFlow(directory, codec, silentSender{}, "http://localhost:8080", 0)

	router := gin.New()
	noLimit := func(c *gin.Context) { c.Next() }
	RegisterRoutes(router.Group("/api/v1"), flow, noLimit, noLimit)

	return router, directory, codec
}

func addConfirmedUser(t *testing.T, directory *memoryDirectory, name, email, password string) *users.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	return directory.add(&users.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         users.RoleUser,
		Confirmed:    true,
	})
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestRegister_Created(t *testing.T) {
	router, _, _ := testSetup(t)

	resp := postJSON(router, "/api/v1/auth/register", RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "passw0rd-1",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"alice"`)
	assert.NotContains(t, resp.Body.String(), "passw0rd-1")
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	router, directory, _ := testSetup(t)
	addConfirmedUser(t, directory, "alice", "alice@example.com", "passw0rd-1")

	resp := postJSON(router, "/api/v1/auth/register", RegisterRequest{
		Name:     "someone-else",
		Email:    "alice@example.com",
		Password: "passw0rd-1",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "email")
}

func TestRegister_InvalidPayload(t *testing.T) {
	router, _, _ := testSetup(t)

	resp := postJSON(router, "/api/v1/auth/register", gin.H{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestLogin_ReturnsBearerToken(t *testing.T) {
	router, directory, codec := testSetup(t)
	user := addConfirmedUser(t, directory, "alice", "alice@example.com", "passw0rd-1")

	resp := postForm(router, "/api/v1/auth/login", url.Values{
		"username": {"alice"},
		"password": {"passw0rd-1"},
	})

	require.Equal(t, http.StatusOK, resp.Code)

	var token TokenResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &token))
	assert.Equal(t, "bearer", token.TokenType)

	claims, err := codec.Decode(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	router, directory, _ := testSetup(t)
	addConfirmedUser(t, directory, "alice", "alice@example.com", "passw0rd-1")

	resp := postForm(router, "/api/v1/auth/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "Bearer", resp.Header().Get("WWW-Authenticate"))
	assert.Contains(t, resp.Body.String(), "Incorrect username or password")
}

func TestLogin_UnconfirmedEmail(t *testing.T) {
	router, directory, _ := testSetup(t)

	hash, err := auth.HashPassword("passw0rd-1")
	require.NoError(t, err)

	directory.add(&users.User{Name: "bob", Email: "bob@example.com", PasswordHash: hash})

	resp := postForm(router, "/api/v1/auth/login", url.Values{
		"username": {"bob"},
		"password": {"passw0rd-1"},
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Email not confirmed")
}

func TestConfirmEmail_Created(t *testing.T) {
	router, directory, codec := testSetup(t)
	directory.add(&users.User{Name: "dave", Email: "dave@example.com"})

	token, err := codec.IssueEmailToken("dave@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/confirm_email/"+token, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "successfully confirmed")
}

func TestConfirmEmail_InvalidToken(t *testing.T) {
	router, _, _ := testSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/confirm_email/garbage", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid token")
}

func TestConfirmEmail_UnknownUser(t *testing.T) {
	router, _, codec := testSetup(t)

	token, err := codec.IssueEmailToken("ghost@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/confirm_email/"+token, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Verification error")
}

func TestRequestReset_UnknownUser(t *testing.T) {
	router, _, _ := testSetup(t)

	resp := postJSON(router, "/api/v1/auth/request_reset", ResetRequest{Email: "ghost@example.com"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRequestReset_KnownUser(t *testing.T) {
	router, directory, _ := testSetup(t)
	addConfirmedUser(t, directory, "alice", "alice@example.com", "passw0rd-1")

	resp := postJSON(router, "/api/v1/auth/request_reset", ResetRequest{Email: "alice@example.com"})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Check your email")
}
