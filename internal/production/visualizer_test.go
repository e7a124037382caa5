package production

import (
	"strings"
	"testing"

	"github.com/comalice/exm/internal/primitives"
)

func buildTrafficLight(t *testing.T) *primitives.Statechart {
	t.Helper()
	sc, err := primitives.Build(primitives.CompositeState{
		Initial: "s1",
		Substates: map[string]primitives.Definition{
			"s1": primitives.SimpleState{
				Transitions: map[string]primitives.TransitionSpec{"e1": primitives.To("s2")},
			},
			"s2": primitives.SimpleState{},
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return sc
}

func TestVisualizer_ExportDOT(t *testing.T) {
	v := Visualizer{}
	dot := v.ExportDOT(buildTrafficLight(t), []string{"s2", "root"})

	if !strings.Contains(dot, "digraph Statechart {") {
		t.Error("missing DOT header")
	}
	if !strings.Contains(dot, `"s1"`) || !strings.Contains(dot, `"s2"`) {
		t.Error("missing state nodes")
	}
	if !strings.Contains(dot, `"s1" -> "s2" [label="e1"]`) {
		t.Error("missing transition edge")
	}
	if !strings.Contains(dot, "fillcolor=lightgreen") {
		t.Error("missing active state highlight")
	}
}

func TestVisualizer_ExportDOT_FinalIsDoubleCircle(t *testing.T) {
	sc, err := primitives.Build(primitives.CompositeState{
		Initial: "s1",
		Substates: map[string]primitives.Definition{
			"s1":   primitives.SimpleState{Transitions: map[string]primitives.TransitionSpec{"e1": primitives.To("exit")}},
			"exit": primitives.Final{},
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	dot := Visualizer{}.ExportDOT(sc, []string{"s1", "root"})
	if !strings.Contains(dot, `"exit" [shape=doublecircle]`) {
		t.Error("final state not rendered as doublecircle")
	}
}

func TestVisualizer_ExportJSON(t *testing.T) {
	v := Visualizer{}
	data, err := v.ExportJSON(buildTrafficLight(t))
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if !strings.Contains(string(data), `"name": "s1"`) {
		t.Error("JSON missing expected node")
	}
	if !strings.Contains(string(data), `"kind": "composite"`) {
		t.Error("JSON missing root's composite kind")
	}
}
