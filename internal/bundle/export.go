package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Export writes the bundle as a single indented JSON document, the
// artifact a static deployment serves directly. Parent directories are
// created as needed.
func Export(b *Bundle, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
