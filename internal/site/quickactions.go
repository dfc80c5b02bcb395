package site

import (
	"context"
	"strings"
	"sync"

	"github.com/IAMC-DH/my-site-template/internal/config"
	"github.com/IAMC-DH/my-site-template/internal/models"
	"github.com/IAMC-DH/my-site-template/internal/pubsub"
	"github.com/IAMC-DH/my-site-template/internal/store"
)

// scrollTopThreshold is the vertical offset past which the scroll-to-top
// button shows.
const scrollTopThreshold = 280

// QuickActions is the floating contact widget: call button, Kakao chat link,
// scroll-to-top.
type QuickActions struct {
	store store.Store
	bus   *pubsub.Bus

	mu     sync.RWMutex
	cfg    config.Object
	policy config.Policy
	sub    *pubsub.Subscription
}

func NewQuickActions(ctx context.Context, st store.Store, bus *pubsub.Bus) *QuickActions {
	q := &QuickActions{
		store:  st,
		bus:    bus,
		policy: quickActionsPolicy(),
	}
	q.cfg = loadMerged(ctx, st, q.policy)
	q.sub = bus.Subscribe(KeyQuickActions, q.onUpdate)
	return q
}

func (q *QuickActions) Close() {
	q.sub.Cancel()
}

func (q *QuickActions) onUpdate(u pubsub.Update) {
	merged := q.policy.Merge(toObject(u.Value))
	q.mu.Lock()
	q.cfg = merged
	q.mu.Unlock()
}

func (q *QuickActions) Config() models.QuickActionConfig {
	q.mu.RLock()
	o := q.cfg
	q.mu.RUnlock()

	var cfg models.QuickActionConfig
	decode(o, &cfg)
	return cfg
}

// Update sets one field and keeps phoneNumber consistent:
//   - editing phoneDisplay re-derives phoneNumber while the user has not
//     manually diverged it (number empty, or still the sanitized old display)
//   - direct phoneNumber edits are sanitized in place
//   - an empty resulting phoneNumber falls back to the sanitized display
//
// The new state applies locally before the save and broadcast go out.
func (q *QuickActions) Update(ctx context.Context, field string, value any) error {
	q.mu.Lock()
	prev := q.cfg
	next, _ := q.policy.Update(prev, field, value)

	switch field {
	case "phoneDisplay":
		display, _ := value.(string)
		prevNumber := stringField(prev, "phoneNumber")
		prevDisplay := stringField(prev, "phoneDisplay")
		if prevNumber == "" || prevNumber == SanitizePhone(prevDisplay) {
			next["phoneNumber"] = SanitizePhone(display)
		}
	case "phoneNumber":
		number, _ := value.(string)
		next["phoneNumber"] = SanitizePhone(number)
	}

	if stringField(next, "phoneNumber") == "" {
		next["phoneNumber"] = SanitizePhone(stringField(next, "phoneDisplay"))
	}

	q.cfg = next
	q.mu.Unlock()

	if err := q.store.SaveData(ctx, KeyQuickActions, next); err != nil {
		return err
	}
	q.store.SaveToFile("quick-actions", field, value)
	return nil
}

// CallNumber is the effective tel: target — the stored number, or the
// sanitized display text when no number is stored.
func (q *QuickActions) CallNumber() string {
	cfg := q.Config()
	if cfg.PhoneNumber != "" {
		return cfg.PhoneNumber
	}
	return SanitizePhone(cfg.PhoneDisplay)
}

// SanitizePhone strips everything except ASCII digits and '+'. Idempotent.
func SanitizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ShowScrollTop reports whether the scroll-to-top button shows for a given
// vertical scroll offset. Derived state only; never persisted.
func ShowScrollTop(offset int) bool {
	return offset > scrollTopThreshold
}

func stringField(o config.Object, key string) string {
	s, _ := o[key].(string)
	return s
}
