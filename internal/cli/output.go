package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"rnconfig/internal/settings"

	"gopkg.in/yaml.v3"
)

// writeValue prints v in the configured output format.
func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case settings.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
