package drift

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatCLI formats drift report for terminal output.
func FormatCLI(report DriftReport) string {
	if !report.HasDrift {
		return ""
	}

	var sb strings.Builder
	if report.Source != "" {
		fmt.Fprintf(&sb, "Configuration changed (%s):\n", report.Source)
	} else {
		sb.WriteString("Configuration changed:\n")
	}

	for _, change := range report.Changes {
		switch change.Type {
		case DriftAdded:
			fmt.Fprintf(&sb, "  + %s: (new) → %s\n", change.Key, change.CurrentValue)
		case DriftRemoved:
			fmt.Fprintf(&sb, "  - %s: %s → (removed)\n", change.Key, change.PreviousValue)
		case DriftChanged:
			fmt.Fprintf(&sb, "  ~ %s: %s → %s\n", change.Key, change.PreviousValue, change.CurrentValue)
		}
	}

	fmt.Fprintf(&sb, "%d change(s), now %s\n", len(report.Changes), report.CurrentHash)
	return sb.String()
}

// FormatJSON formats drift report as JSON.
func FormatJSON(report DriftReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
