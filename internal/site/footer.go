package site

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/IAMC-DH/my-site-template/internal/config"
	"github.com/IAMC-DH/my-site-template/internal/models"
	"github.com/IAMC-DH/my-site-template/internal/pubsub"
	"github.com/IAMC-DH/my-site-template/internal/store"
)

// Footer is the page footer component. It holds the merged footer-info and
// nav-config records, keeps them consistent with the store via the bus, and
// derives the render views.
type Footer struct {
	store store.Store
	bus   *pubsub.Bus

	mu   sync.RWMutex
	info config.Object
	nav  config.Object

	infoPolicy config.Policy
	navPolicy  config.Policy
	subs       []*pubsub.Subscription
}

// NewFooter mounts the footer: loads both records through their merge
// policies and subscribes to change broadcasts. Close releases the
// subscriptions.
func NewFooter(ctx context.Context, st store.Store, bus *pubsub.Bus) *Footer {
	f := &Footer{
		store:      st,
		bus:        bus,
		infoPolicy: footerPolicy(),
		navPolicy:  navPolicy(),
	}

	f.info = loadMerged(ctx, st, f.infoPolicy)
	f.nav = loadMerged(ctx, st, f.navPolicy)

	f.subs = append(f.subs,
		bus.Subscribe(KeyFooterInfo, f.onInfoUpdate),
		bus.Subscribe(KeyNavConfig, f.onNavUpdate),
	)
	return f
}

func (f *Footer) Close() {
	for _, sub := range f.subs {
		sub.Cancel()
	}
}

// onInfoUpdate re-applies the merge policy to an incoming record, exactly as
// on mount. Protected fields are re-asserted here even if the payload came
// from a tampered store write.
func (f *Footer) onInfoUpdate(u pubsub.Update) {
	merged := f.infoPolicy.Merge(toObject(u.Value))
	f.mu.Lock()
	f.info = merged
	f.mu.Unlock()
}

func (f *Footer) onNavUpdate(u pubsub.Update) {
	merged := f.navPolicy.Merge(toObject(u.Value))
	f.mu.Lock()
	f.nav = merged
	f.mu.Unlock()
}

// Info returns the typed view of the merged footer record.
func (f *Footer) Info() models.FooterInfo {
	f.mu.RLock()
	o := f.info
	f.mu.RUnlock()

	var info models.FooterInfo
	decode(o, &info)
	return info
}

// UpdateInfo sets one footer field, applies it locally, then persists and
// broadcasts. Protected fields are rejected with ErrProtectedField before
// any state change or save.
func (f *Footer) UpdateInfo(ctx context.Context, field string, value any) error {
	f.mu.Lock()
	next, ok := f.infoPolicy.Update(f.info, field, value)
	if !ok {
		f.mu.Unlock()
		return ErrProtectedField
	}
	f.info = next
	f.mu.Unlock()

	if err := f.store.SaveData(ctx, KeyFooterInfo, next); err != nil {
		return err
	}
	f.store.SaveToFile("footer", field, value)
	return nil
}

// UpdateNav replaces the authored navigation list.
func (f *Footer) UpdateNav(ctx context.Context, items []models.NavItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}

	record := config.Object{"items": list}
	merged := f.navPolicy.Merge(record)

	f.mu.Lock()
	f.nav = merged
	f.mu.Unlock()

	if err := f.store.SaveData(ctx, KeyNavConfig, record); err != nil {
		return err
	}
	f.store.SaveToFile("nav", "items", items)
	return nil
}

// NavSource returns the authored navigation items, including hidden ones,
// for the editor panel.
func (f *Footer) NavSource() []models.NavItem {
	f.mu.RLock()
	o := f.nav
	f.mu.RUnlock()

	var record struct {
		Items []models.NavItem `json:"items"`
	}
	decode(o, &record)
	return record.Items
}

// NavItems returns the visible navigation projection. When nothing survives
// the visibility filter it falls back to a minimal hard-coded list.
func (f *Footer) NavItems() []models.DisplayNavItem {
	var visible []models.DisplayNavItem
	for _, item := range f.NavSource() {
		if item.Visible() {
			visible = append(visible, models.DisplayNavItem{Name: item.Name, URL: item.URL})
		}
	}
	if len(visible) == 0 {
		return fallbackNavItems()
	}
	return visible
}

// Visible reports whether the footer renders at all. In edit mode it always
// renders so an editor can re-enable it.
func (f *Footer) Visible(editMode bool) bool {
	if editMode {
		return true
	}
	return f.Info().ShowFooter
}
