package auth

import (
	"context"
	"sync"
	"time"

	"codeberg.org/rolodex/server/rolodex/users"
)

// in-memory UserDirectory recording call counts
type fakeDirectory struct {
	mu     sync.Mutex
	users  map[int64]*users.User
	nextID int64

	findByNameCalls  int
	findByEmailCalls int
	insertCalls      int
	confirmCalls     int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{users: map[int64]*users.User{}, nextID: 1}
}

func (d *fakeDirectory) add(user *users.User) *users.User {
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

func (d *fakeDirectory) FindByName(_ context.Context, name string) (*users.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.findByNameCalls++

	for _, u := range d.users {
		if u.Name == name {
			clone := *u
			return &clone, nil
		}
	}

	return nil, nil
}

func (d *fakeDirectory) FindByEmail(_ context.Context, email string) (*users.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.findByEmailCalls++

	for _, u := range d.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}

	return nil, nil
}

func (d *fakeDirectory) Insert(_ context.Context, draft users.Draft) (*users.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.insertCalls++

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

func (d *fakeDirectory) ConfirmEmail(_ context.Context, email string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.confirmCalls++

	for _, u := range d.users {
		if u.Email == email {
			u.Confirmed = true
		}
	}

	return nil
}

// in-memory TokenCache with TTL handling and counters
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry

	getCalls int
	hits     int
	putCalls int
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]cacheEntry{}}
}

func (c *fakeCache) Get(_ context.Context, token string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.getCalls++

	entry, ok := c.entries[token]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false, nil
	}

	c.hits++

	return entry.value, true, nil
}

func (c *fakeCache) Put(_ context.Context, token, snapshot string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.putCalls++
	c.entries[token] = cacheEntry{value: snapshot, expiresAt: time.Now().Add(ttl)}

	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, token)

	return nil
}

// TokenCache whose backend is down
type brokenCache struct{ err error }

func (c brokenCache) Get(context.Context, string) (string, bool, error) { return "", false, c.err }
func (c brokenCache) Put(context.Context, string, string, time.Duration) error {
	return c.err
}
func (c brokenCache) Invalidate(context.Context, string) error { return c.err }

// EmailSender recording dispatched messages
type fakeSender struct {
	mu    sync.Mutex
	sends []sentMessage
}

type sentMessage struct {
	recipient string
	name      string
	kind      MessageKind
}

func (s *fakeSender) Send(_ context.Context, recipient, displayName, _ string, kind MessageKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sends = append(s.sends, sentMessage{recipient: recipient, name: displayName, kind: kind})

	return nil
}

func (s *fakeSender) sent() []sentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]sentMessage, len(s.sends))
	copy(out, s.sends)

	return out
}
