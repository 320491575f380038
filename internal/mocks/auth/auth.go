package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialExchanger = (*MockExchanger)(nil)
	_ ports.SessionStore        = (*MemorySessionStore)(nil)
	_ ports.RoleRepository      = (*StaticRoleRepository)(nil)
	_ ports.StatusFeed          = (*MemoryStatusFeed)(nil)
)

// MockExchanger verifies any password equal to Password and returns Identity.
type MockExchanger struct {
	Identity domainauth.Identity
	Password string

	SignUpFunc func(ctx context.Context, in ports.SignUpInput) (domainauth.Identity, error)
	VerifyFunc func(ctx context.Context, email, password string) (domainauth.Identity, error)
}

// NewMockExchanger creates a MockExchanger with a default identity.
func NewMockExchanger() *MockExchanger {
	return &MockExchanger{
		Identity: domainauth.Identity{
			UserID:      "user-1",
			Email:       "shopper@example.com",
			DisplayName: "Test Shopper",
			ExpiresAt:   time.Now().Add(time.Hour),
		},
		Password: "hunter22",
	}
}

func (m *MockExchanger) SignUp(ctx context.Context, in ports.SignUpInput) (domainauth.Identity, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, in)
	}
	id := m.Identity
	id.Email = in.Email
	id.DisplayName = in.DisplayName
	return id, nil
}

func (m *MockExchanger) Verify(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, password)
	}
	if email != m.Identity.Email || password != m.Password {
		return domainauth.Identity{}, apperrors.Unauthorized("invalid email or password")
	}
	id := m.Identity
	id.ExpiresAt = time.Now().Add(time.Hour)
	return id, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
// It is safe for concurrent use, matching the Redis implementation.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	DeleteAllCalls int
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, apperrors.NotFound("session not found")
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemorySessionStore) DeleteAllForUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteAllCalls++
	for id, sess := range m.sessions {
		if sess.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

// Len reports how many sessions are stored.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StaticRoleRepository returns the same role set for every user and counts
// calls.
type StaticRoleRepository struct {
	mu    sync.Mutex
	Roles domainauth.RoleSet
	Err   error
	calls int
}

func (r *StaticRoleRepository) RolesForUser(context.Context, string) (domainauth.RoleSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Roles.Clone(), nil
}

// Calls reports how many lookups were made.
func (r *StaticRoleRepository) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// MemoryStatusFeed is an in-process StatusFeed: Publish delivers to every
// open watch for the user.
type MemoryStatusFeed struct {
	mu      sync.Mutex
	watches map[string][]*memoryStatusWatch

	WatchCalls int
}

// NewMemoryStatusFeed creates an empty feed.
func NewMemoryStatusFeed() *MemoryStatusFeed {
	return &MemoryStatusFeed{watches: make(map[string][]*memoryStatusWatch)}
}

func (f *MemoryStatusFeed) Watch(_ context.Context, userID string) (ports.StatusWatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.WatchCalls++
	w := &memoryStatusWatch{feed: f, userID: userID, ch: make(chan domainauth.AccountStatus, 1)}
	f.watches[userID] = append(f.watches[userID], w)
	return w, nil
}

func (f *MemoryStatusFeed) Publish(_ context.Context, userID string, status domainauth.AccountStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.watches[userID] {
		select {
		case w.ch <- status:
		default:
		}
	}
	return nil
}

// OpenWatches reports how many watches are currently open for the user.
func (f *MemoryStatusFeed) OpenWatches(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.watches[userID])
}

type memoryStatusWatch struct {
	feed   *MemoryStatusFeed
	userID string
	ch     chan domainauth.AccountStatus
	once   sync.Once
}

func (w *memoryStatusWatch) C() <-chan domainauth.AccountStatus { return w.ch }

func (w *memoryStatusWatch) Close() error {
	w.once.Do(func() {
		f := w.feed
		f.mu.Lock()
		open := f.watches[w.userID]
		for i, other := range open {
			if other == w {
				f.watches[w.userID] = append(open[:i], open[i+1:]...)
				break
			}
		}
		f.mu.Unlock()
		close(w.ch)
	})
	return nil
}
