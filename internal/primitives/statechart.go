package primitives

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind tags a compiled StateNode with its definition variant.
type Kind int

const (
	Simple Kind = iota
	Composite
	FinalKind
	ShallowHistoryKind
	DeepHistoryKind
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Composite:
		return "composite"
	case FinalKind:
		return "final"
	case ShallowHistoryKind:
		return "shallow_history"
	case DeepHistoryKind:
		return "deep_history"
	default:
		return "unknown"
	}
}

// CompiledTransition is a TransitionSpec after normalization (§4.1 step 3):
// a bare target name becomes {Target, Guard: nil, Action: nil, Name: event}.
type CompiledTransition struct {
	Name   string // the event name this transition fires on
	Target string
	Guard  Guard
	Action Action
}

// StateNode is one entry of the compiled, flat name -> node mapping (§3).
type StateNode struct {
	Name        string
	Kind        Kind
	Parent      string // "" for root
	HasParent   bool
	Children    []string // sorted by name, stable across Build calls
	Initial     string
	HasInitial  bool
	Transitions map[string]CompiledTransition // event name -> transition
	Entry       Action
	Exit        Action
	HasHistory  bool // true for a composite with >=1 history child
}

// Statechart is the compiled, immutable statechart graph produced by Build.
// Iteration over its nodes follows compile order (via an ordered map):
// depth first from "root", with siblings sorted by name. This keeps
// downstream export/visualization deterministic; the engine itself never
// depends on that order.
type Statechart struct {
	nodes *orderedmap.OrderedMap[string, *StateNode]
}

// Node returns the compiled node for name, or nil if absent.
func (s *Statechart) Node(name string) *StateNode {
	n, ok := s.nodes.Get(name)
	if !ok {
		return nil
	}
	return n
}

// Names returns every state name in the statechart, in compile order
// (depth first from "root", siblings sorted by name).
func (s *Statechart) Names() []string {
	out := make([]string, 0, s.nodes.Len())
	for pair := s.nodes.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Build compiles a Definition tree into a flat Statechart graph (§4.1).
func Build(def Definition) (*Statechart, error) {
	root, ok := def.(CompositeState)
	if !ok {
		return nil, &InvalidDefinitionError{Reason: "root must be a CompositeState"}
	}
	if len(root.Substates) == 0 {
		return nil, &InvalidDefinitionError{Reason: "root composite has no substates"}
	}

	sc := &Statechart{nodes: orderedmap.New[string, *StateNode]()}
	if err := compile(sc, "root", "", false, def); err != nil {
		return nil, err
	}

	// Validate each composite's Initial names an existing descendant, and
	// every transition target names an existing state (§4.1 step 5).
	for _, name := range sc.Names() {
		node := sc.Node(name)
		if node.Kind == Composite {
			if !isDescendant(sc, node.Name, node.Initial) {
				return nil, &NotValidInitialError{Initial: node.Initial, Parent: node.Name}
			}
		}
		for _, t := range node.Transitions {
			if sc.Node(t.Target) == nil {
				return nil, &NotDefinedStateError{Name: t.Target}
			}
		}
	}

	return sc, nil
}

// compile recursively walks def, creating a StateNode per visited name and
// merging substates into the single flat map (§4.1 steps 1-4).
func compile(sc *Statechart, name, parent string, hasParent bool, def Definition) error {
	if _, exists := sc.nodes.Get(name); exists {
		return &DuplicatedStateError{Names: []string{name}}
	}

	switch d := def.(type) {
	case CompositeState:
		if len(d.Substates) == 0 {
			return &InvalidDefinitionError{Reason: "composite state \"" + name + "\" has no substates"}
		}
		node := &StateNode{
			Name:        name,
			Kind:        Composite,
			Parent:      parent,
			HasParent:   hasParent,
			Initial:     d.Initial,
			HasInitial:  d.Initial != "",
			Transitions: normalizeTransitions(d.Transitions),
			Entry:       d.Entry,
			Exit:        d.Exit,
		}
		for _, child := range d.Substates {
			if h, ok := child.(History); ok {
				node.HasHistory = true
				_ = h
			}
		}
		sc.nodes.Set(name, node)
		for childName := range d.Substates {
			node.Children = append(node.Children, childName)
		}
		sortChildrenStable(node.Children, d.Substates)
		for _, childName := range node.Children {
			if err := compile(sc, childName, name, true, d.Substates[childName]); err != nil {
				return err
			}
		}
		return nil

	case SimpleState:
		sc.nodes.Set(name, &StateNode{
			Name:        name,
			Kind:        Simple,
			Parent:      parent,
			HasParent:   hasParent,
			Transitions: normalizeTransitions(d.Transitions),
			Entry:       d.Entry,
			Exit:        d.Exit,
		})
		return nil

	case Final:
		sc.nodes.Set(name, &StateNode{
			Name:      name,
			Kind:      FinalKind,
			Parent:    parent,
			HasParent: hasParent,
			Entry:     d.Entry,
		})
		return nil

	case History:
		kind := ShallowHistoryKind
		if d.Kind == DeepHistory {
			kind = DeepHistoryKind
		}
		sc.nodes.Set(name, &StateNode{
			Name:      name,
			Kind:      kind,
			Parent:    parent,
			HasParent: hasParent,
		})
		return nil

	default:
		return &InvalidDefinitionError{Reason: "unknown definition variant for \"" + name + "\""}
	}
}

func normalizeTransitions(in map[string]TransitionSpec) map[string]CompiledTransition {
	out := make(map[string]CompiledTransition, len(in))
	for event, spec := range in {
		out[event] = CompiledTransition{
			Name:   event,
			Target: spec.Target,
			Guard:  spec.Guard,
			Action: spec.Action,
		}
	}
	return out
}

// sortChildrenStable orders a composite's children deterministically by
// name so Build's output (and therefore export order) does not depend on
// Go's randomized map iteration of the author-supplied Substates map.
func sortChildrenStable(names []string, _ map[string]Definition) {
	for i := 1; i < len(names); i++ {
		j := i
		for j > 0 && names[j-1] > names[j] {
			names[j-1], names[j] = names[j], names[j-1]
			j--
		}
	}
}

func isDescendant(sc *Statechart, ancestor, name string) bool {
	node := sc.Node(name)
	for node != nil && node.HasParent {
		if node.Parent == ancestor {
			return true
		}
		node = sc.Node(node.Parent)
	}
	return false
}
