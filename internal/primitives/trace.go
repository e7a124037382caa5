package primitives

import "time"

// Microstep records a single transition: the exited/entered state sets and
// the number of actions run for it (exits, deepest first; then the
// transition action; then entries, shallowest first). The Action values
// themselves are not kept in the Microstep. A Microstep
// whose Transition is absent represents the initial entry into the
// machine (§3).
type Microstep struct {
	Transition   *CompiledTransition
	Params       any
	HasParams    bool
	Entered      []string
	Exited       []string
	ActionsCount int // number of action functions run, for trace inspection
}

// Macrostep records everything that happened while processing one external
// event (or the initial entry) to quiescence: the ordered Microsteps, and
// the aggregate lists accumulated across them.
type Macrostep struct {
	Timestamp    time.Time
	Event        *Event
	Transitions  []CompiledTransition
	Entered      []string
	Exited       []string
	ActionsCount int
	Microsteps   []Microstep
}

// appendMicrostep folds a completed Microstep into the Macrostep's running
// aggregates, in execution order (§4.4).
func (m *Macrostep) appendMicrostep(ms Microstep) {
	m.Microsteps = append(m.Microsteps, ms)
	if ms.Transition != nil {
		m.Transitions = append(m.Transitions, *ms.Transition)
	}
	m.Entered = append(m.Entered, ms.Entered...)
	m.Exited = append(m.Exited, ms.Exited...)
	m.ActionsCount += ms.ActionsCount
}

// TransitionNames returns the event names of every transition taken in
// this Macrostep, in execution order - handy for asserting RTC chains
// like S4's ["e1", "e2", "e3"].
func (m Macrostep) TransitionNames() []string {
	out := make([]string, 0, len(m.Transitions))
	for _, t := range m.Transitions {
		out = append(out, t.Name)
	}
	return out
}
