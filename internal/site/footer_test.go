package site

import (
	"context"
	"errors"
	"testing"

	"github.com/IAMC-DH/my-site-template/internal/config"
	"github.com/IAMC-DH/my-site-template/internal/models"
	"github.com/IAMC-DH/my-site-template/internal/pubsub"
	"github.com/IAMC-DH/my-site-template/internal/store"
)

func newTestFooter(t *testing.T) (*Footer, *store.Memory, *pubsub.Bus) {
	t.Helper()
	bus := pubsub.NewBus()
	st := store.NewMemory(bus)
	f := NewFooter(context.Background(), st, bus)
	t.Cleanup(f.Close)
	return f, st, bus
}

func TestFooterDefaultsWhenStoreEmpty(t *testing.T) {
	f, _, _ := newTestFooter(t)

	info := f.Info()
	if info.Name == "" {
		t.Error("expected default name")
	}
	if !info.ShowFooter || !info.ShowTemplateCredit || !info.ShowMadeWith {
		t.Errorf("expected default visibility toggles on, got %+v", info)
	}
	if info.TemplateCreator.Name != "IAMC-DH" {
		t.Errorf("expected default template creator, got %q", info.TemplateCreator.Name)
	}
}

func TestFooterMergesPartialRecord(t *testing.T) {
	bus := pubsub.NewBus()
	st := store.NewMemory(bus)
	if err := st.SaveData(context.Background(), KeyFooterInfo, config.Object{"name": "튼튼정형외과"}); err != nil {
		t.Fatal(err)
	}

	f := NewFooter(context.Background(), st, bus)
	defer f.Close()

	info := f.Info()
	if info.Name != "튼튼정형외과" {
		t.Errorf("expected saved name, got %q", info.Name)
	}
	if info.Description == "" {
		t.Error("expected unsaved field to keep its default")
	}
}

func TestFooterProtectedFieldsSurviveTamperedRecord(t *testing.T) {
	bus := pubsub.NewBus()
	st := store.NewMemory(bus)
	if err := st.SaveData(context.Background(), KeyFooterInfo, config.Object{
		"showTemplateCredit": false,
		"showMadeWith":       false,
		"templateCreator":    map[string]any{"name": "X"},
	}); err != nil {
		t.Fatal(err)
	}

	f := NewFooter(context.Background(), st, bus)
	defer f.Close()

	info := f.Info()
	if !info.ShowTemplateCredit {
		t.Error("expected showTemplateCredit re-asserted to default true")
	}
	if !info.ShowMadeWith {
		t.Error("expected showMadeWith re-asserted to default true")
	}
	if info.TemplateCreator.Name == "X" {
		t.Errorf("expected template creator re-asserted to default, got %q", info.TemplateCreator.Name)
	}
}

func TestFooterUpdateRejectsProtectedField(t *testing.T) {
	f, st, _ := newTestFooter(t)

	err := f.UpdateInfo(context.Background(), "showTemplateCredit", false)
	if !errors.Is(err, ErrProtectedField) {
		t.Fatalf("expected ErrProtectedField, got %v", err)
	}

	if !f.Info().ShowTemplateCredit {
		t.Error("expected showTemplateCredit unchanged")
	}

	saved, err := st.GetData(context.Background(), KeyFooterInfo)
	if err != nil {
		t.Fatal(err)
	}
	if saved != nil {
		t.Error("expected rejected update not to be saved")
	}
	if len(st.Exports()) != 0 {
		t.Error("expected rejected update not to be exported")
	}
}

func TestFooterUpdatePersistsAndExports(t *testing.T) {
	f, st, _ := newTestFooter(t)

	if err := f.UpdateInfo(context.Background(), "name", "새로운의원"); err != nil {
		t.Fatal(err)
	}

	if f.Info().Name != "새로운의원" {
		t.Errorf("expected local state updated, got %q", f.Info().Name)
	}

	saved, err := st.GetData(context.Background(), KeyFooterInfo)
	if err != nil {
		t.Fatal(err)
	}
	if saved["name"] != "새로운의원" {
		t.Errorf("expected saved record, got %v", saved["name"])
	}

	exports := st.Exports()
	if len(exports) != 1 || exports[0].Section != "footer" || exports[0].Field != "name" {
		t.Errorf("expected one footer/name export, got %+v", exports)
	}
}

func TestNavFallbackWhenAllItemsHidden(t *testing.T) {
	bus := pubsub.NewBus()
	st := store.NewMemory(bus)
	if err := st.SaveData(context.Background(), KeyNavConfig, config.Object{
		"items": []any{
			map[string]any{"name": "X", "url": "#x", "show": false},
		},
	}); err != nil {
		t.Fatal(err)
	}

	f := NewFooter(context.Background(), st, bus)
	defer f.Close()

	items := f.NavItems()
	fallback := fallbackNavItems()
	if len(items) != len(fallback) {
		t.Fatalf("expected fallback list of %d items, got %d", len(fallback), len(items))
	}
	for i := range items {
		if items[i] != fallback[i] {
			t.Errorf("expected fallback item %v, got %v", fallback[i], items[i])
		}
	}
}

func TestNavFiltersAndProjects(t *testing.T) {
	f, st, _ := newTestFooter(t)

	hidden := false
	items := []models.NavItem{
		{Name: "진료안내", URL: "#services", Icon: "stethoscope"},
		{Name: "숨김", URL: "#hidden", Show: &hidden},
		{Name: "", URL: "#no-name"},
		{Name: "이름만"},
	}
	if err := f.UpdateNav(context.Background(), items); err != nil {
		t.Fatal(err)
	}

	display := f.NavItems()
	if len(display) != 1 {
		t.Fatalf("expected 1 visible item, got %d: %v", len(display), display)
	}
	if display[0] != (models.DisplayNavItem{Name: "진료안내", URL: "#services"}) {
		t.Errorf("expected projection without edit-only fields, got %+v", display[0])
	}

	saved, err := st.GetData(context.Background(), KeyNavConfig)
	if err != nil {
		t.Fatal(err)
	}
	if saved == nil {
		t.Fatal("expected nav record to be saved")
	}
	if len(saved["items"].([]any)) != 4 {
		t.Errorf("expected all authored items persisted, got %v", saved["items"])
	}
}

func TestBroadcastPropagation(t *testing.T) {
	bus := pubsub.NewBus()
	st := store.NewMemory(bus)

	a := NewFooter(context.Background(), st, bus)
	defer a.Close()
	b := NewFooter(context.Background(), st, bus)
	defer b.Close()

	if err := a.UpdateInfo(context.Background(), "phone", "02) 123-4567"); err != nil {
		t.Fatal(err)
	}

	if b.Info().Phone != "02) 123-4567" {
		t.Errorf("expected broadcast to reach second instance, got %q", b.Info().Phone)
	}
}

func TestBroadcastReappliesProtectedLock(t *testing.T) {
	bus := pubsub.NewBus()
	st := store.NewMemory(bus)

	f := NewFooter(context.Background(), st, bus)
	defer f.Close()

	// A direct store write bypasses UpdateInfo entirely; the merge layer
	// must still hold the lock.
	if err := st.SaveData(context.Background(), KeyFooterInfo, config.Object{
		"name":            "멀쩡한이름",
		"templateCreator": map[string]any{"name": "X"},
	}); err != nil {
		t.Fatal(err)
	}

	info := f.Info()
	if info.Name != "멀쩡한이름" {
		t.Errorf("expected free field applied, got %q", info.Name)
	}
	if info.TemplateCreator.Name == "X" {
		t.Errorf("expected protected field re-asserted, got %q", info.TemplateCreator.Name)
	}
}

func TestFooterVisibility(t *testing.T) {
	bus := pubsub.NewBus()
	st := store.NewMemory(bus)
	if err := st.SaveData(context.Background(), KeyFooterInfo, config.Object{"showFooter": false}); err != nil {
		t.Fatal(err)
	}

	f := NewFooter(context.Background(), st, bus)
	defer f.Close()

	if f.Visible(false) {
		t.Error("expected footer suppressed with showFooter=false and edit mode off")
	}
	if !f.Visible(true) {
		t.Error("expected footer visible in edit mode regardless of showFooter")
	}
}

func TestFooterCloseStopsUpdates(t *testing.T) {
	bus := pubsub.NewBus()
	st := store.NewMemory(bus)

	f := NewFooter(context.Background(), st, bus)
	f.Close()

	if err := st.SaveData(context.Background(), KeyFooterInfo, config.Object{"name": "닫힌뒤"}); err != nil {
		t.Fatal(err)
	}

	if f.Info().Name == "닫힌뒤" {
		t.Error("expected no updates after Close")
	}
}
