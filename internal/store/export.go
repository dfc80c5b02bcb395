package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/IAMC-DH/my-site-template/internal/config"
)

// exportSection writes one section file under dir. A non-empty field updates
// that single field inside the existing export; an empty field replaces the
// whole file with value, which must encode to a JSON object.
func exportSection(dir, section, field string, value any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(dir, section+".json")

	out := config.Object{}
	if data, err := os.ReadFile(path); err == nil {
		// A malformed previous export is overwritten, not an error.
		_ = json.Unmarshal(data, &out)
	}

	if field == "" {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		var whole config.Object
		if err := json.Unmarshal(raw, &whole); err != nil {
			return fmt.Errorf("section %q export is not an object: %w", section, err)
		}
		out = whole
	} else {
		out[field] = value
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
