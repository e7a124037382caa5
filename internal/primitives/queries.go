package primitives

// Ancestors returns the ordered sequence from name's nearest parent up to
// and including "root"; empty for the root itself.
func (s *Statechart) Ancestors(name string) []string {
	return s.ancestorsUntil(name, "", false)
}

// AncestorsUntil returns name's ancestors, stopping before until
// (exclusive). If until is "" the full chain up to and including "root" is
// returned (equivalent to Ancestors).
func (s *Statechart) AncestorsUntil(name, until string) []string {
	return s.ancestorsUntil(name, until, true)
}

func (s *Statechart) ancestorsUntil(name, until string, bounded bool) []string {
	var out []string
	node := s.Node(name)
	if node == nil {
		return out
	}
	cur := node
	for cur.HasParent {
		if bounded && cur.Parent == until {
			break
		}
		out = append(out, cur.Parent)
		cur = s.Node(cur.Parent)
		if cur == nil {
			break
		}
	}
	return out
}

// Descendants returns the set of name's transitive children, not
// including name itself.
func (s *Statechart) Descendants(name string) map[string]struct{} {
	out := map[string]struct{}{}
	var walk func(string)
	walk = func(n string) {
		node := s.Node(n)
		if node == nil {
			return
		}
		for _, child := range node.Children {
			out[child] = struct{}{}
			walk(child)
		}
	}
	walk(name)
	return out
}

// InitialChain returns [name, initial(name), initial(initial(name)), ...],
// stopping when a state has no Initial. A simple/final/history state is a
// chain of one element; History states behave as leaves (§9 Open Question:
// history resumption is not implemented).
func (s *Statechart) InitialChain(name string) []string {
	chain := []string{name}
	node := s.Node(name)
	for node != nil && node.Kind == Composite && node.HasInitial {
		chain = append(chain, node.Initial)
		node = s.Node(node.Initial)
	}
	return chain
}

// EntryActions returns the subsequence of Entry actions present among
// states, in the given order.
func (s *Statechart) EntryActions(states []string) []Action {
	var out []Action
	for _, name := range states {
		if node := s.Node(name); node != nil && node.Entry != nil {
			out = append(out, node.Entry)
		}
	}
	return out
}

// ExitActions returns the subsequence of Exit actions present among
// states, in the given order.
func (s *Statechart) ExitActions(states []string) []Action {
	var out []Action
	for _, name := range states {
		if node := s.Node(name); node != nil && node.Exit != nil {
			out = append(out, node.Exit)
		}
	}
	return out
}

// TransitionFor returns the CompiledTransition defined on exactly state for
// event, if any. Callers walk the active branch from leaf to root to find
// the first match (§4.5.3).
func (s *Statechart) TransitionFor(state, event string) (CompiledTransition, bool) {
	node := s.Node(state)
	if node == nil {
		return CompiledTransition{}, false
	}
	t, ok := node.Transitions[event]
	return t, ok
}

// LCCA returns the deepest state having every element of states as a
// descendant: the least common compound ancestor. It returns ("", false)
// if the list contains "root" (root has no proper compound ancestor).
//
// For the canonical source/target pair this is the first ancestor of
// source (walking up from the nearest parent) that also contains target
// as a descendant - which is exactly the deepest common ancestor, since
// ancestors are visited nearest-first.
func (s *Statechart) LCCA(states []string) (string, bool) {
	if len(states) == 0 {
		return "", false
	}
	for _, st := range states {
		if st == "root" {
			return "", false
		}
	}
	source := states[0]
	for _, candidate := range s.Ancestors(source) {
		desc := s.Descendants(candidate)
		ok := true
		for _, st := range states {
			if _, isDesc := desc[st]; !isDesc {
				ok = false
				break
			}
		}
		if ok {
			return candidate, true
		}
	}
	return "", false
}

// ExitingStates returns [source] ++ ancestors_until(source, lcca) (§4.2).
func (s *Statechart) ExitingStates(source, lcca string) []string {
	return append([]string{source}, s.AncestorsUntil(source, lcca)...)
}

// EnteringStates returns reverse(ancestors_until(target, lcca)) ++
// initial_chain(target), giving parent-before-child order (§4.2).
func (s *Statechart) EnteringStates(target, lcca string) []string {
	anc := s.AncestorsUntil(target, lcca)
	reversed := make([]string, len(anc))
	for i, name := range anc {
		reversed[len(anc)-1-i] = name
	}
	return append(reversed, s.InitialChain(target)...)
}
