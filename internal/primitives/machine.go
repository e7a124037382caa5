package primitives

import "time"

// Machine is the interpreter's running instance: the current
// configuration, context, pending internal queue, and macrostep history.
// Machine is a value type - Init and Dispatch each return a fresh Machine,
// leaving their receiver/argument untouched (§3, §5).
type Machine struct {
	statechart     *Statechart
	configuration  [][]string // exactly one branch; leaf first, "root" last
	running        bool
	ctx            Context
	queue          []Event
	macrosteps     []Macrostep // newest first
	stateHistories map[string][]string
}

// Statechart returns the compiled graph this machine runs.
func (m Machine) Statechart() *Statechart { return m.statechart }

// Running reports whether the machine can still accept Dispatch calls.
func (m Machine) Running() bool { return m.running }

// Context returns the machine's current extended state.
func (m Machine) Context() Context { return m.ctx }

// StateHistories returns the recorded sub-configurations for history
// states exited so far (§4.5.4 step 2). Currently unused for resumption
// (§9 Open Question) but retained for future history-resume support and
// for snapshot/export.
func (m Machine) StateHistories() map[string][]string {
	out := make(map[string][]string, len(m.stateHistories))
	for k, v := range m.stateHistories {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ActiveStates returns the active branch, leaf first, ending in "root".
func (m Machine) ActiveStates() []string {
	if len(m.configuration) == 0 {
		return nil
	}
	return append([]string(nil), m.configuration[0]...)
}

// LastMacrostep returns the most recently started/completed Macrostep.
func (m Machine) LastMacrostep() Macrostep { return m.macrosteps[0] }

// LastMicrosteps returns the microsteps of the most recent Macrostep.
func (m Machine) LastMicrosteps() []Microstep { return m.macrosteps[0].Microsteps }

// LastTransitions returns the transitions fired during the most recent
// Macrostep, in execution order.
func (m Machine) LastTransitions() []CompiledTransition { return m.macrosteps[0].Transitions }

// MacrostepCount returns the number of macrosteps recorded so far.
func (m Machine) MacrostepCount() int { return len(m.macrosteps) }

// Init builds the running Machine for statechart, entering the initial
// configuration and draining any internal events raised along the way
// (§4.5.1).
func Init(sc *Statechart, ctx Context) Machine {
	m := &Machine{
		statechart:     sc,
		ctx:            ctx,
		macrosteps:     []Macrostep{{Timestamp: now()}},
		stateHistories: map[string][]string{},
	}

	m.running = true
	entered := sc.InitialChain("root")
	actions := sc.EntryActions(entered)
	m.applyMicrostep(Microstep{Entered: entered, ActionsCount: len(actions)}, actions)
	m.drainInternal()
	return *m
}

// Dispatch delivers event (a string or Event) to the machine, running it
// to completion before returning the resulting Machine (§4.5.2). Dispatch
// on a machine that has already reached its top-level final state fails
// with NotRunningError.
func (m Machine) Dispatch(rawEvent any) (Machine, error) {
	if !m.running {
		return Machine{}, &NotRunningError{}
	}
	evt := Normalize(rawEvent)

	working := m.clone()
	working.macrosteps = append([]Macrostep{{Timestamp: now(), Event: &evt}}, working.macrosteps...)
	working.doTransition(evt)
	working.drainInternal()
	return *working, nil
}

func (m Machine) clone() *Machine {
	cfg := make([][]string, len(m.configuration))
	for i, branch := range m.configuration {
		cfg[i] = append([]string(nil), branch...)
	}
	hist := make(map[string][]string, len(m.stateHistories))
	for k, v := range m.stateHistories {
		hist[k] = append([]string(nil), v...)
	}
	return &Machine{
		statechart:     m.statechart,
		configuration:  cfg,
		running:        m.running,
		ctx:            m.ctx,
		queue:          append([]Event(nil), m.queue...),
		macrosteps:     append([]Macrostep(nil), m.macrosteps...),
		stateHistories: hist,
	}
}

// doTransition searches the active branch for a transition firing on evt
// and, if one fires, builds and applies the resulting Microstep (§4.5.3).
func (m *Machine) doTransition(evt Event) {
	if evt.Name == DoneStateEvent("root") {
		m.running = false
		return
	}

	searchCtx := m.ctx
	hasParams := evt.Params != nil
	if hasParams {
		searchCtx = m.ctx.PutParams(evt.Params)
	}

	var branch []string
	if len(m.configuration) > 0 {
		branch = m.configuration[0]
	}

	var found CompiledTransition
	matched := false
	for _, state := range branch {
		t, ok := m.statechart.TransitionFor(state, evt.Name)
		if !ok {
			continue
		}
		if t.Guard == nil || t.Guard.Check(searchCtx) {
			found, matched = t, true
			break
		}
		// guard false: keep walking toward root (§4.5.3).
	}
	if !matched {
		return // unhandled event: machine returned unchanged (§7)
	}

	// source is always the active leaf, regardless of which ancestor
	// declared the matching transition (§4.5.3).
	source := branch[0]

	lcca, _ := m.statechart.LCCA([]string{source, found.Target})
	exiting := m.statechart.ExitingStates(source, lcca)
	entering := m.statechart.EnteringStates(found.Target, lcca)

	var actions []Action
	actions = append(actions, m.statechart.ExitActions(exiting)...)
	if found.Action != nil {
		actions = append(actions, found.Action)
	}
	actions = append(actions, m.statechart.EntryActions(entering)...)

	t := found
	ms := Microstep{
		Transition:   &t,
		Params:       evt.Params,
		HasParams:    hasParams,
		Entered:      entering,
		Exited:       exiting,
		ActionsCount: len(actions),
	}

	m.ctx = searchCtx
	m.applyMicrostep(ms, actions)
	m.ctx = m.ctx.DeleteParams()
}

// applyMicrostep advances the configuration, threads the context through
// the microstep's actions, records history, raises done.state.* on final
// entry, and merges newly raised internal events into the queue (§4.5.4).
func (m *Machine) applyMicrostep(ms Microstep, actions []Action) {
	leaf := ms.Entered[len(ms.Entered)-1]
	oldBranch := m.activeBranch()
	newBranch := append([]string{leaf}, m.statechart.Ancestors(leaf)...)
	m.configuration = [][]string{newBranch}

	for _, name := range ms.Exited {
		node := m.statechart.Node(name)
		if node != nil && node.HasHistory && oldBranch != nil {
			m.stateHistories[name] = subConfigBelow(oldBranch, name)
		}
	}

	m.macrosteps[0].appendMicrostep(ms)

	m.ctx = runAll(actions, m.ctx)

	if leafNode := m.statechart.Node(leaf); leafNode != nil && leafNode.Kind == FinalKind && leafNode.HasParent {
		m.ctx = m.ctx.RaiseEvent(Event{Name: DoneStateEvent(leafNode.Parent)})
	}

	if raised := m.ctx.queue(); len(raised) > 0 {
		m.queue = append(m.queue, raised...)
		m.ctx = m.ctx.clearQueue()
	}
}

// drainInternal processes the internal event queue FIFO, within the same
// Macrostep, until it is empty or the machine stops running (§4.5.5).
func (m *Machine) drainInternal() {
	for len(m.queue) > 0 && m.running {
		evt := m.queue[0]
		m.queue = m.queue[1:]
		m.doTransition(evt)
	}
}

func (m Machine) activeBranch() []string {
	if len(m.configuration) == 0 {
		return nil
	}
	return m.configuration[0]
}

// subConfigBelow returns the prefix of branch below name, from the leaf up
// to but excluding name: the descendants of name that were active, leaf
// first.
func subConfigBelow(branch []string, name string) []string {
	for i, s := range branch {
		if s == name {
			out := make([]string, i)
			copy(out, branch[:i])
			return out
		}
	}
	return nil
}

// now is a seam so tests can observe Macrostep.Timestamp deterministically
// if ever needed; production code always uses wall-clock time.
var now = time.Now
