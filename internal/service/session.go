package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	"github.com/bkndhn/bazaar-api/internal/observability/metrics"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// SessionPhase is the coordinator's lifecycle phase. Unknown means the
// initial restore has not completed; consumers treat it as "still loading",
// never as signed out.
type SessionPhase string

const (
	PhaseUnknown       SessionPhase = "unknown"
	PhaseAnonymous     SessionPhase = "anonymous"
	PhaseAuthenticated SessionPhase = "authenticated"
)

// SessionSnapshot is an immutable view of the coordinator's state.
type SessionSnapshot struct {
	Phase   SessionPhase
	Session *domainauth.Session
	Roles   domainauth.RoleSet

	IsAdmin           bool
	IsSuperAdmin      bool
	IsDeliveryPartner bool
}

// SessionCoordinatorOptions groups dependencies for SessionCoordinator.
type SessionCoordinatorOptions struct {
	Auth    ports.Authenticator
	Events  ports.AuthEvents
	Roles   ports.RoleRepository
	Status  ports.AccountStatusRepository
	Feed    ports.StatusFeed
	Logger  *slog.Logger
	Metrics *metrics.SessionMetrics

	// QueueSize bounds the internal task queue. Defaults to 64.
	QueueSize int
}

// SessionCoordinator owns the session lifecycle for one logical client
// (a storefront gateway instance): it restores the persisted session at
// startup, reacts to auth events, resolves roles, enforces admin account
// pauses, and exposes a consistent snapshot.
//
// All state transitions run on a single worker goroutine draining a task
// queue, so event handlers never re-enter each other. Async work snapshots
// the state generation before it starts and drops its write when the
// generation has moved on, which makes a sign-out during an in-flight role
// resolution win unconditionally.
type SessionCoordinator struct {
	auth    ports.Authenticator
	events  ports.AuthEvents
	roles   ports.RoleRepository
	status  ports.AccountStatusRepository
	feed    ports.StatusFeed
	logger  *slog.Logger
	metrics *metrics.SessionMetrics

	mu      sync.Mutex
	phase   SessionPhase
	session *domainauth.Session
	roleSet domainauth.RoleSet
	gen     uint64

	watch       ports.StatusWatch
	watchUserID string
	watchDone   chan struct{}

	tasks       chan func(context.Context)
	unsubscribe func()
	done        chan struct{}
	workerDone  chan struct{}
	closeOnce   sync.Once
}

// NewSessionCoordinator constructs a coordinator in the Unknown phase.
// Call Start to subscribe to events and run the initial restore.
func NewSessionCoordinator(opts SessionCoordinatorOptions) *SessionCoordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	size := opts.QueueSize
	if size <= 0 {
		size = 64
	}
	return &SessionCoordinator{
		auth:       opts.Auth,
		events:     opts.Events,
		roles:      opts.Roles,
		status:     opts.Status,
		feed:       opts.Feed,
		logger:     logger,
		metrics:    opts.Metrics,
		phase:      PhaseUnknown,
		roleSet:    domainauth.NewRoleSet(),
		tasks:      make(chan func(context.Context), size),
		done:       make(chan struct{}),
		workerDone: make(chan struct{}),
	}
}

// Start subscribes to the auth event stream, starts the worker, and enqueues
// the initial restore for the given session id (empty means no persisted
// session). ctx bounds the lifetime of all queued work.
func (c *SessionCoordinator) Start(ctx context.Context, restoreSessionID string) {
	c.unsubscribe = c.events.Subscribe(func(ev domainauth.Event) {
		c.handleEvent(ev)
	})

	go c.worker(ctx)

	c.enqueue(func(ctx context.Context) {
		c.restore(ctx, restoreSessionID)
	})
}

// Close tears down the event subscription, the status watch, and the worker.
// Safe to call more than once.
func (c *SessionCoordinator) Close() {
	c.closeOnce.Do(func() {
		if c.unsubscribe != nil {
			c.unsubscribe()
		}
		close(c.done)
		<-c.workerDone

		c.mu.Lock()
		c.stopWatchLocked()
		c.mu.Unlock()
	})
}

// Snapshot returns the current state. The returned session and role set are
// copies; mutating them does not affect the coordinator.
func (c *SessionCoordinator) Snapshot() SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := SessionSnapshot{
		Phase:             c.phase,
		Roles:             c.roleSet.Clone(),
		IsAdmin:           c.roleSet.Has(domainauth.RoleAdmin),
		IsSuperAdmin:      c.roleSet.Has(domainauth.RoleSuperAdmin),
		IsDeliveryPartner: c.roleSet.Has(domainauth.RoleDeliveryPartner),
	}
	if c.session != nil {
		s := *c.session
		snap.Session = &s
	}
	return snap
}

// SignIn verifies credentials through the authenticator. The resulting
// SIGNED_IN event drives the state transition and role resolution.
func (c *SessionCoordinator) SignIn(ctx context.Context, email, password string) (domainauth.Session, error) {
	return c.auth.SignIn(ctx, email, password)
}

// SignUp creates a credential without signing in.
func (c *SessionCoordinator) SignUp(ctx context.Context, in ports.SignUpInput) (domainauth.Identity, error) {
	return c.auth.SignUp(ctx, in)
}

// SignOut clears local state immediately and revokes the current session
// with global scope. Calling it with no active session is a no-op.
func (c *SessionCoordinator) SignOut(ctx context.Context) error {
	c.mu.Lock()
	if c.session == nil {
		// Already anonymous; resolving the phase is still worthwhile so a
		// sign-out during Unknown lands somewhere definite.
		c.setPhaseLocked(PhaseAnonymous)
		c.mu.Unlock()
		return nil
	}
	sessionID := c.session.ID
	c.clearLocked()
	c.mu.Unlock()

	if err := c.auth.SignOut(ctx, sessionID, domainauth.ScopeGlobal); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// worker drains the task queue sequentially until Close signals shutdown.
func (c *SessionCoordinator) worker(ctx context.Context) {
	defer close(c.workerDone)
	for {
		select {
		case <-c.done:
			return
		case task := <-c.tasks:
			if ctx.Err() != nil {
				continue
			}
			task(ctx)
		}
	}
}

// enqueue hands a task to the worker. Once Close has signalled shutdown the
// task is discarded; late events from the watch goroutine or the event bus
// must not block or panic.
func (c *SessionCoordinator) enqueue(task func(context.Context)) {
	select {
	case <-c.done:
	case c.tasks <- task:
	}
}

// handleEvent runs on the publisher's goroutine; it only classifies the
// event and enqueues the real work.
func (c *SessionCoordinator) handleEvent(ev domainauth.Event) {
	switch ev.Kind {
	case domainauth.EventSignedIn, domainauth.EventInitialSession:
		session := ev.Session
		c.enqueue(func(ctx context.Context) {
			c.resolve(ctx, session)
		})
	case domainauth.EventSignedOut:
		c.enqueue(func(ctx context.Context) {
			c.mu.Lock()
			c.clearLocked()
			c.mu.Unlock()
		})
	case domainauth.EventTokenRefreshed:
		// A refresh only moves the expiry; it must not re-resolve roles or
		// re-check account status.
		session := ev.Session
		c.enqueue(func(context.Context) {
			c.mu.Lock()
			if c.session != nil && session != nil && c.session.ID == session.ID {
				c.session.ExpiresAt = session.ExpiresAt
			}
			c.mu.Unlock()
		})
	}
}

// restore loads the persisted session at startup and resolves it as an
// initial session. Failure to load degrades to anonymous, never to a stuck
// Unknown phase.
func (c *SessionCoordinator) restore(ctx context.Context, sessionID string) {
	if sessionID == "" {
		c.mu.Lock()
		c.setPhaseLocked(PhaseAnonymous)
		c.mu.Unlock()
		return
	}
	session, err := c.auth.CurrentSession(ctx, sessionID)
	if err != nil {
		c.logger.ErrorContext(ctx, "session restore failed", "session_id", sessionID, "error", err)
		session = nil
	}
	if session == nil {
		c.mu.Lock()
		c.setPhaseLocked(PhaseAnonymous)
		c.mu.Unlock()
		return
	}
	c.resolve(ctx, session)
}

// resolve installs the session, fetches its roles, and enforces the admin
// pause. The account status is fetched at most once per resolution; the
// standing status watch carries changes that happen afterwards.
func (c *SessionCoordinator) resolve(ctx context.Context, session *domainauth.Session) {
	if session == nil {
		return
	}

	c.mu.Lock()
	c.session = cloneSession(session)
	c.setPhaseLocked(PhaseAuthenticated)
	gen := c.gen
	c.mu.Unlock()

	roleSet, err := c.roles.RolesForUser(ctx, session.UserID)
	if err != nil {
		c.logger.ErrorContext(ctx, "role resolution failed, treating as no roles",
			"user_id", session.UserID, "error", err)
		roleSet = domainauth.NewRoleSet()
	}

	if roleSet.Has(domainauth.RoleAdmin) {
		status, err := c.status.StatusForAdmin(ctx, session.UserID)
		if err != nil {
			c.logger.ErrorContext(ctx, "account status check failed, assuming active",
				"user_id", session.UserID, "error", err)
			status = domainauth.AccountActive
		}
		if status == domainauth.AccountPaused {
			c.forceSignOut(ctx, session.ID, "account paused")
			return
		}
	}

	c.mu.Lock()
	if c.gen != gen {
		// State was replaced while we were resolving; the newer transition
		// wins and this result is discarded.
		c.mu.Unlock()
		return
	}
	c.roleSet = roleSet
	c.gen++
	userID := session.UserID
	wantWatch := roleSet.Has(domainauth.RoleAdmin)
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.RoleResolution(len(roleSet))
	}

	if wantWatch {
		c.startWatch(ctx, userID)
	} else {
		c.mu.Lock()
		c.stopWatchLocked()
		c.mu.Unlock()
	}
}

// forceSignOut clears local state and revokes only the current session.
// Local scope keeps the revocation off the event stream, so the pause path
// cannot re-trigger the handlers that invoked it.
func (c *SessionCoordinator) forceSignOut(ctx context.Context, sessionID, reason string) {
	c.mu.Lock()
	c.clearLocked()
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "forcing sign-out", "session_id", sessionID, "reason", reason)
	if c.metrics != nil {
		c.metrics.ForcedSignOut(reason)
	}
	if err := c.auth.SignOut(ctx, sessionID, domainauth.ScopeLocal); err != nil {
		c.logger.ErrorContext(ctx, "forced sign-out failed", "session_id", sessionID, "error", err)
	}
}

// startWatch establishes the standing account-status subscription for an
// admin user. Re-resolving the same user keeps the existing watch.
func (c *SessionCoordinator) startWatch(ctx context.Context, userID string) {
	if c.feed == nil {
		return
	}

	c.mu.Lock()
	if c.watch != nil && c.watchUserID == userID {
		c.mu.Unlock()
		return
	}
	c.stopWatchLocked()
	c.mu.Unlock()

	watch, err := c.feed.Watch(ctx, userID)
	if err != nil {
		c.logger.ErrorContext(ctx, "account status watch failed", "user_id", userID, "error", err)
		return
	}

	done := make(chan struct{})
	c.mu.Lock()
	if c.session == nil || c.session.UserID != userID {
		// Signed out while establishing the watch.
		c.mu.Unlock()
		_ = watch.Close()
		return
	}
	c.watch = watch
	c.watchUserID = userID
	c.watchDone = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		for status := range watch.C() {
			if status != domainauth.AccountPaused {
				continue
			}
			c.enqueue(func(ctx context.Context) {
				c.mu.Lock()
				if c.session == nil || c.session.UserID != userID {
					c.mu.Unlock()
					return
				}
				sessionID := c.session.ID
				c.mu.Unlock()
				c.forceSignOut(ctx, sessionID, "account paused mid-session")
			})
		}
	}()
}

// stopWatchLocked closes the status watch. Callers hold c.mu. The watch is
// closed explicitly rather than abandoned so the server-side subscription is
// released promptly.
func (c *SessionCoordinator) stopWatchLocked() {
	if c.watch == nil {
		return
	}
	_ = c.watch.Close()
	c.watch = nil
	c.watchUserID = ""
	c.watchDone = nil
}

// clearLocked transitions to Anonymous and discards session, roles, and the
// status watch. Callers hold c.mu.
func (c *SessionCoordinator) clearLocked() {
	c.session = nil
	c.roleSet = domainauth.NewRoleSet()
	c.setPhaseLocked(PhaseAnonymous)
	c.stopWatchLocked()
}

// setPhaseLocked replaces the phase and bumps the generation so in-flight
// async work observes the change. Callers hold c.mu.
func (c *SessionCoordinator) setPhaseLocked(p SessionPhase) {
	if c.metrics != nil && c.phase != p {
		c.metrics.PhaseTransition(string(c.phase), string(p))
	}
	c.phase = p
	c.gen++
}

func cloneSession(s *domainauth.Session) *domainauth.Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Roles = append([]domainauth.Role(nil), s.Roles...)
	return &out
}
