package service

import (
	"sync"

	domainauth "github.com/bkndhn/bazaar-api/internal/domain/auth"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// EventBus is an in-process fan-out for auth events. Handlers run
// synchronously on the publishing goroutine, so they must be cheap;
// subscribers that need to do real work enqueue it elsewhere.
type EventBus struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(domainauth.Event)
}

var _ ports.AuthEvents = (*EventBus)(nil)

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[int]func(domainauth.Event))}
}

// Subscribe registers a handler and returns its unsubscribe func.
// Unsubscribe is idempotent and safe to call concurrently.
func (b *EventBus) Subscribe(handler func(domainauth.Event)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Publish delivers the event to every current subscriber.
func (b *EventBus) Publish(ev domainauth.Event) {
	b.mu.Lock()
	handlers := make([]func(domainauth.Event), 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
