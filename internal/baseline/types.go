package baseline

import (
	"time"

	"rnconfig/internal/artifact"
)

// Baseline is a named snapshot of a project's resolved configuration that
// later runs are compared against.
type Baseline struct {
	Name      string                  `json:"name"`
	Root      string                  `json:"root"`
	Snapshot  artifact.ConfigArtifact `json:"snapshot"`
	CreatedAt time.Time               `json:"createdAt"`
}

// Summary is a lightweight view for listing baselines.
type Summary struct {
	Name          string    `json:"name"`
	ConfigVersion string    `json:"configVersion"`
	Keys          int       `json:"keys"`
	CreatedAt     time.Time `json:"createdAt"`
}
