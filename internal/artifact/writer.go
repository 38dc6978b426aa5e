package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteToFile writes the artifact to path, creating parent directories if needed.
func (a ConfigArtifact) WriteToFile(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating artifact dir: %w", err)
		}
	}

	data, err := a.ToJSON()
	if err != nil {
		return fmt.Errorf("encoding artifact: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact: %w", err)
	}
	return nil
}
