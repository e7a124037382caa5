package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/exm/internal/primitives"
)

// Visualizer renders a compiled Statechart for inspection: Graphviz DOT for
// diagrams, JSON for tooling that wants the raw node table.
type Visualizer struct{}

// ExportDOT generates Graphviz DOT source for sc, highlighting the states
// named in active (typically Machine.ActiveStates()).
func (Visualizer) ExportDOT(sc *primitives.Statechart, active []string) string {
	activeSet := make(map[string]bool, len(active))
	for _, s := range active {
		activeSet[s] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph Statechart {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	for _, name := range sc.Names() {
		node := sc.Node(name)
		shape := "box"
		if node.Kind == primitives.FinalKind {
			shape = "doublecircle"
		}
		style := ""
		if activeSet[name] {
			style = ", style=\"rounded,filled\", fillcolor=lightgreen"
		}
		fmt.Fprintf(&buf, "  \"%s\" [shape=%s%s];\n", name, shape, style)

		for event, t := range node.Transitions {
			fmt.Fprintf(&buf, "  \"%s\" -> \"%s\" [label=\"%s\"];\n", name, t.Target, event)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeView is the JSON-friendly projection of a StateNode: Action/Guard
// values aren't serializable, so only structural fields are exported.
type nodeView struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Parent     string   `json:"parent,omitempty"`
	Children   []string `json:"children,omitempty"`
	Initial    string   `json:"initial,omitempty"`
	Events     []string `json:"events,omitempty"`
	HasHistory bool     `json:"has_history,omitempty"`
}

// ExportJSON serializes sc's compiled node table, in sc.Names() order.
func (Visualizer) ExportJSON(sc *primitives.Statechart) ([]byte, error) {
	views := make([]nodeView, 0, len(sc.Names()))
	for _, name := range sc.Names() {
		node := sc.Node(name)
		events := make([]string, 0, len(node.Transitions))
		for event := range node.Transitions {
			events = append(events, event)
		}
		views = append(views, nodeView{
			Name:       node.Name,
			Kind:       node.Kind.String(),
			Parent:     node.Parent,
			Children:   node.Children,
			Initial:    node.Initial,
			Events:     events,
			HasHistory: node.HasHistory,
		})
	}
	return json.MarshalIndent(views, "", "  ")
}
