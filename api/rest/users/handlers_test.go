package users

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/rolodex/server/internal/auth"
	"codeberg.org/rolodex/server/rolodex/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// in-memory store backing both the resolver's directory and the
// profile handlers
type memoryStore struct {
	mu     sync.Mutex
	users  map[int64]*users.User
	nextID int64

	findByNameCalls int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: map[int64]*users.User{}, nextID: 1}
}

func (s *memoryStore) add(user *users.User) *users.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == 0 {
		user.ID = s.nextID
		s.nextID++
	}

	clone := *user
	s.users[clone.ID] = &clone

	return &clone
}

func (s *memoryStore) FindByName(_ context.Context, name string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.findByNameCalls++

	for _, u := range s.users {
		if u.Name == name {
			clone := *u
			return &clone, nil
		}
	}

	return nil, nil
}

func (s *memoryStore) FindByEmail(_ context.Context, email string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}

	return nil, nil
}

func (s *memoryStore) Insert(_ context.Context, draft users.Draft) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &users.User{
		ID:           s.nextID,
		Name:         draft.Name,
		Email:        draft.Email,
		PasswordHash: draft.PasswordHash,
		Role:         users.RoleUser,
	}
	s.nextID++
	s.users[user.ID] = user

	clone := *user

	return &clone, nil
}

func (s *memoryStore) ConfirmEmail(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			u.Confirmed = true
		}
	}

	return nil
}

func (s *memoryStore) Update(_ context.Context, id int64, patch users.Patch) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	if patch.Avatar != nil {
		user.Avatar = patch.Avatar
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}

	clone := *user

	return &clone, nil
}

func (s *memoryStore) get(id int64) *users.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *s.users[id]

	return &clone
}

// in-memory auth.TokenCache
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]string{}}
}

func (c *memoryCache) Get(_ context.Context, token string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.entries[token]

	return value, ok, nil
}

func (c *memoryCache) Put(_ context.Context, token, snapshot string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[token] = snapshot

	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, token)

	return nil
}

func (c *memoryCache) has(token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[token]

	return ok
}

// AvatarStore returning a fixed URL
type fakeUploader struct{ url string }

func (u fakeUploader) Upload(_ context.Context, _ string, body io.Reader, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}

	return u.url, nil
}

func testSetup(t *testing.T) (*gin.Engine, *memoryStore, *memoryCache, string, *users.User) {
	t.Helper()

	codec, err := auth.NewTokenCodec("test-secret-key-for-testing", "HS256")
	require.NoError(t, err)

	store := newMemoryStore()
	user := store.add(&users.User{
		Name:      "alice",
		Email:     "alice@example.com",
		Role:      users.RoleUser,
		Confirmed: true,
	})

	cache := newMemoryCache()
	resolver := auth.NewResolver(codec, cache, store)

	router := gin.New()
	noLimit := func(c *gin.Context) { c.Next() }
	RegisterRoutes(router.Group("/api/v1"), resolver, store, fakeUploader{url: "https://cdn.example.com/avatars/alice.png"}, cache, noLimit)

	token, err := codec.IssueAccessToken(user, time.Hour)
	require.NoError(t, err)

	return router, store, cache, token, user
}

func perform(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestMe(t *testing.T) {
	router, _, _, token, _ := testSetup(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp := perform(router, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"alice"`)
}

func TestMe_NoToken(t *testing.T) {
	router, _, _, _, _ := testSetup(t)

	resp := perform(router, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

// changing the password must drop the caller's cached identity so the
// next request re-reads the directory
func TestUpdatePassword_InvalidatesCachedIdentity(t *testing.T) {
	router, store, cache, token, user := testSetup(t)

	// first request populates the snapshot cache
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, perform(router, req).Code)
	require.True(t, cache.has(token))
	require.Equal(t, 1, store.findByNameCalls)

	body, _ := json.Marshal(PasswordRequest{Password: "brand-new-passw0rd"})
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/users/password", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp := perform(router, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.False(t, cache.has(token), "mutation must purge the caller's snapshot")

	ok, err := auth.VerifyPassword("brand-new-passw0rd", store.get(user.ID).PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// the password mutation resolved from the cache, so the next request
	// is the first to fall through to the directory again
	req = httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, perform(router, req).Code)
	assert.Equal(t, 2, store.findByNameCalls, "resolve after invalidation must hit the directory")
}

func TestUpdatePassword_TooShort(t *testing.T) {
	router, _, _, token, _ := testSetup(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/password", bytes.NewReader([]byte(`{"password":"short"}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp := perform(router, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateAvatar_InvalidatesCachedIdentity(t *testing.T) {
	router, store, cache, token, user := testSetup(t)

	// populate the snapshot cache first
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, perform(router, req).Code)
	require.True(t, cache.has(token))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/users/avatar", &body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp := perform(router, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "https://cdn.example.com/avatars/alice.png")
	assert.False(t, cache.has(token))

	updated := store.get(user.ID)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, "https://cdn.example.com/avatars/alice.png", *updated.Avatar)
}

func TestUpdateAvatar_MissingFile(t *testing.T) {
	router, _, _, token, _ := testSetup(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/avatar", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp := perform(router, req)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
