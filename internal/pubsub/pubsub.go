package pubsub

import (
	"sync"

	"github.com/google/uuid"
)

// Update is one change notification: the store key that changed and the full
// new value written for it.
type Update struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Handler receives updates for a subscribed key. Handlers run synchronously
// on the publishing goroutine and must not block.
type Handler func(Update)

// Bus is an in-memory publish/subscribe registry keyed by store key.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]map[string]Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[string]Handler)}
}

// Subscription is a handle tied to one subscriber; Cancel releases it.
type Subscription struct {
	bus  *Bus
	key  string
	id   string
	once sync.Once
}

// Subscribe registers a handler for updates to key.
func (b *Bus) Subscribe(key string, h Handler) *Subscription {
	id := uuid.NewString()

	b.mu.Lock()
	if b.subs[key] == nil {
		b.subs[key] = make(map[string]Handler)
	}
	b.subs[key][id] = h
	b.mu.Unlock()

	return &Subscription{bus: b, key: key, id: id}
}

// Publish dispatches the update to every current subscriber of its key.
// Handlers are invoked outside the registry lock so they may subscribe or
// cancel without deadlocking.
func (b *Bus) Publish(u Update) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[u.Key]))
	for _, h := range b.subs[u.Key] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(u)
	}
}

// Cancel removes the subscription. Safe to call more than once and after the
// bus has published.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		if handlers, ok := s.bus.subs[s.key]; ok {
			delete(handlers, s.id)
			if len(handlers) == 0 {
				delete(s.bus.subs, s.key)
			}
		}
		s.bus.mu.Unlock()
	})
}
