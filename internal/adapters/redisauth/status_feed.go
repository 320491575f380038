package redisauth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

const statusChannelPrefix = "account_status:"

// statusMessage is the wire shape published on the status channel.
type statusMessage struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// StatusFeed delivers admin account status changes over Redis pub/sub.
type StatusFeed struct {
	client redis.UniversalClient
	logger *slog.Logger
}

// NewStatusFeed creates a new StatusFeed.
func NewStatusFeed(client redis.UniversalClient, logger *slog.Logger) *StatusFeed {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatusFeed{client: client, logger: logger}
}

// Publish broadcasts a status change for the user.
func (f *StatusFeed) Publish(ctx context.Context, userID string, status domainauth.AccountStatus) error {
	payload, err := json.Marshal(statusMessage{UserID: userID, Status: string(status)})
	if err != nil {
		return fmt.Errorf("marshal status message: %w", err)
	}
	return f.client.Publish(ctx, statusChannelPrefix+userID, payload).Err()
}

// Watch opens a standing subscription to one identity's status updates.
// The returned watch must be closed on every exit path; the subscription
// holds a server-side connection until then.
func (f *StatusFeed) Watch(ctx context.Context, userID string) (ports.StatusWatch, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	pubsub := f.client.Subscribe(ctx, statusChannelPrefix+userID)
	// Force the subscribe round trip so a broken connection fails here, not
	// silently in the receive loop.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe status channel: %w", err)
	}

	w := &statusWatch{
		pubsub: pubsub,
		ch:     make(chan domainauth.AccountStatus, 1),
	}
	go w.run(f.logger)
	return w, nil
}

type statusWatch struct {
	pubsub *redis.PubSub
	ch     chan domainauth.AccountStatus

	closeOnce sync.Once
	closeErr  error
}

func (w *statusWatch) run(logger *slog.Logger) {
	defer close(w.ch)
	for msg := range w.pubsub.Channel() {
		var sm statusMessage
		if err := json.Unmarshal([]byte(msg.Payload), &sm); err != nil {
			logger.Error("malformed status message", "error", err)
			continue
		}
		select {
		case w.ch <- domainauth.AccountStatus(sm.Status):
		default:
			// Drop when the consumer lags; only the latest status matters.
		}
	}
}

func (w *statusWatch) C() <-chan domainauth.AccountStatus { return w.ch }

// Close actively releases the server-side subscription.
func (w *statusWatch) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.pubsub.Close()
	})
	return w.closeErr
}

var _ ports.StatusFeed = (*StatusFeed)(nil)
