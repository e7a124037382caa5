// Package primitives provides the foundational data structures
// for the statechart engine: the extended-state Context, Events, the pluggable
// Action/Guard capabilities, the author-facing Definition tree, the compiled
// Statechart graph and its queries, the microstep/macrostep trace, and the
// Machine interpreter itself.
//
// The interpreter itself (Context, Event, Action/Guard, Machine) is
// stdlib-only; the compiled Statechart's node table uses
// github.com/wk8/go-ordered-map/v2 purely for deterministic iteration
// order (§3 - the engine treats that table as an unordered mapping, but
// downstream export/visualization shouldn't have to fight Go's randomized
// map order). gopkg.in/yaml.v3 stays out of this package entirely; it is
// wired one layer up, in snapshot/.
package primitives

// Context holds a statechart's extended state: arbitrary user data plus two
// engine-reserved slots. Context is a value type; every mutating method
// returns a new Context and leaves the receiver untouched, so actions with
// the signature Context -> Context compose without aliasing surprises.
//
// Two keys are reserved by the engine and must not be read or written
// directly by authors: paramsKey carries the parameters of the event
// currently being processed, queueKey carries the FIFO of internally
// raised events.
type Context map[string]any

const (
	paramsKey = "exm_params"
	queueKey  = "exm_queue"
)

// NewContext returns an empty Context.
func NewContext() Context {
	return Context{}
}

// Put returns a new Context with key set to value.
func (c Context) Put(key string, value any) Context {
	out := c.clone()
	out[key] = value
	return out
}

// Get returns the value for key and whether it was present.
func (c Context) Get(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

// GetOr returns the value for key, or def if absent.
func (c Context) GetOr(key string, def any) any {
	if v, ok := c[key]; ok {
		return v
	}
	return def
}

// Delete returns a new Context with key removed.
func (c Context) Delete(key string) Context {
	if _, ok := c[key]; !ok {
		return c
	}
	out := c.clone()
	delete(out, key)
	return out
}

// PutParams stores the parameters of the event currently being processed.
func (c Context) PutParams(params any) Context {
	return c.Put(paramsKey, params)
}

// GetParams returns the parameters of the event currently being processed.
func (c Context) GetParams() (any, bool) {
	return c.Get(paramsKey)
}

// DeleteParams clears the reserved params slot.
func (c Context) DeleteParams() Context {
	return c.Delete(paramsKey)
}

// RaiseEvent appends ev to the internal event queue (FIFO, processed before
// the next external event is accepted).
func (c Context) RaiseEvent(ev Event) Context {
	q := c.queue()
	next := make([]Event, len(q), len(q)+1)
	copy(next, q)
	next = append(next, ev)
	return c.Put(queueKey, next)
}

// queue returns the raw internal event queue, or nil if empty/absent.
func (c Context) queue() []Event {
	v, ok := c[queueKey]
	if !ok {
		return nil
	}
	q, _ := v.([]Event)
	return q
}

// clearQueue returns a new Context with the internal event queue removed.
func (c Context) clearQueue() Context {
	return c.Delete(queueKey)
}

// Has reports whether key is present.
func (c Context) Has(key string) bool {
	_, ok := c[key]
	return ok
}

func (c Context) clone() Context {
	out := make(Context, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	return out
}
