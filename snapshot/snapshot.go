// Package snapshot serializes a Machine's read-only state for export,
// inspection, or storage between process restarts. It has no bearing on
// the interpreter's semantics: a Snapshot is a projection of a Machine,
// never a thing a Machine is built back from mid-run.
package snapshot

import (
	"github.com/comalice/exm/internal/primitives"
)

// Snapshot is the serializable view of a Machine at a point in time: the
// active configuration, the extended context, whether it is still
// running, and how many macrosteps it has processed.
type Snapshot struct {
	MachineID      string         `json:"machine_id" yaml:"machine_id"`
	Configuration  []string       `json:"configuration" yaml:"configuration"`
	Context        map[string]any `json:"context" yaml:"context"`
	Running        bool           `json:"running" yaml:"running"`
	MacrostepCount int            `json:"macrostep_count" yaml:"macrostep_count"`
}

// From builds a Snapshot of m, tagged with id.
func From(id string, m primitives.Machine) Snapshot {
	ctx := m.Context()
	data := make(map[string]any, len(ctx))
	for k, v := range ctx {
		data[k] = v
	}
	return Snapshot{
		MachineID:      id,
		Configuration:  m.ActiveStates(),
		Context:        data,
		Running:        m.Running(),
		MacrostepCount: m.MacrostepCount(),
	}
}
