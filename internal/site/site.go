package site

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/IAMC-DH/my-site-template/internal/config"
	"github.com/IAMC-DH/my-site-template/internal/store"
)

// Store keys consumed by the site components.
const (
	KeyFooterInfo   = "footer-info"
	KeyNavConfig    = "nav-config"
	KeyQuickActions = "floating-quick-actions"
)

// ContentKeys lists every editable record the components read, in the order
// the live feed announces them.
var ContentKeys = []string{KeyFooterInfo, KeyNavConfig, KeyQuickActions}

// ErrProtectedField is returned when an update targets a field that may not
// be changed through any editor.
var ErrProtectedField = errors.New("field is protected and cannot be changed")

// loadMerged reads one record and runs it through the policy merge. A store
// error is treated like an absent record: the component still mounts with
// its defaults.
func loadMerged(ctx context.Context, st store.Store, p config.Policy) config.Object {
	saved, err := st.GetData(ctx, p.Key)
	if err != nil {
		slog.Error("Failed to load content record", "key", p.Key, "error", err)
	}
	return p.Merge(saved)
}

// toObject coerces a broadcast payload back into a record. Payloads arrive
// either as config.Object (in-process publish) or as a decoded JSON map.
func toObject(v any) config.Object {
	switch t := v.(type) {
	case config.Object:
		return t
	case map[string]any:
		return config.Object(t)
	default:
		return nil
	}
}

// decode projects a merged record onto a typed view. Defaults guarantee every
// field is present after merge, so decoding cannot lose required fields.
func decode(o config.Object, dst any) {
	raw, err := json.Marshal(o)
	if err != nil {
		slog.Error("Failed to encode content record", "error", err)
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.Error("Failed to decode content record", "error", err)
	}
}
