package store

import (
	"context"

	"github.com/IAMC-DH/my-site-template/internal/config"
)

// Store is the shared content store behind every editable component. Values
// live in a flat key-value namespace; each key holds one JSON record.
type Store interface {
	// GetData returns the record stored under key, or nil when absent.
	GetData(ctx context.Context, key string) (config.Object, error)
	// SaveData fully replaces the record under key and broadcasts the change.
	SaveData(ctx context.Context, key string, value config.Object) error
	// SaveToFile exports a section to the data directory, best effort.
	// Failures are logged and never surfaced back into content state.
	SaveToFile(section, field string, value any)
	// EditMode reports the process-wide inline-edit flag.
	EditMode() bool
	SetEditMode(enabled bool)
	Close()
}
