// Package drift compares two configuration snapshots key by key.
package drift

import (
	"sort"
	"time"

	"rnconfig/internal/artifact"
)

// DriftType represents the type of configuration change.
type DriftType string

const (
	DriftAdded   DriftType = "added"   // Key in current but not previous
	DriftRemoved DriftType = "removed" // Key in previous but not current
	DriftChanged DriftType = "changed" // Key in both with different values
)

// KeyDrift represents a single key's drift.
type KeyDrift struct {
	Key           string    `json:"key"`
	Type          DriftType `json:"type"`
	PreviousValue string    `json:"previousValue,omitempty"`
	CurrentValue  string    `json:"currentValue,omitempty"`
}

// DriftReport contains the full drift analysis.
type DriftReport struct {
	HasDrift     bool       `json:"hasDrift"`
	Source       string     `json:"source,omitempty"`
	PreviousHash string     `json:"previousHash"`
	CurrentHash  string     `json:"currentHash"`
	DetectedAt   time.Time  `json:"detectedAt"`
	Changes      []KeyDrift `json:"changes"`
}

// Detect compares the current snapshot against the previous one.
func Detect(previous, current artifact.ConfigArtifact) DriftReport {
	report := DriftReport{
		PreviousHash: previous.ConfigVersion,
		CurrentHash:  current.ConfigVersion,
		DetectedAt:   time.Now().UTC(),
		Changes:      []KeyDrift{},
	}

	// equal hashes mean equal values
	if previous.ConfigVersion != "" && previous.ConfigVersion == current.ConfigVersion {
		return report
	}

	allKeys := make(map[string]bool)
	for k := range previous.Values {
		allKeys[k] = true
	}
	for k := range current.Values {
		allKeys[k] = true
	}

	keys := make([]string, 0, len(allKeys))
	for k := range allKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		prevVal, inPrev := previous.Values[key]
		currVal, inCurr := current.Values[key]

		switch {
		case inPrev && !inCurr:
			report.Changes = append(report.Changes, KeyDrift{
				Key:           key,
				Type:          DriftRemoved,
				PreviousValue: prevVal,
			})
		case !inPrev && inCurr:
			report.Changes = append(report.Changes, KeyDrift{
				Key:          key,
				Type:         DriftAdded,
				CurrentValue: currVal,
			})
		case prevVal != currVal:
			report.Changes = append(report.Changes, KeyDrift{
				Key:           key,
				Type:          DriftChanged,
				PreviousValue: prevVal,
				CurrentValue:  currVal,
			})
		}
	}

	report.HasDrift = len(report.Changes) > 0
	return report
}
