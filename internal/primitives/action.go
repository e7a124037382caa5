package primitives

// Action is the single-method capability a state's entry/exit function or a
// transition's action is modeled as: a pure Context -> Context transform.
// Modeling it as an interface (rather than a bare func type) lets callers
// supply richer values (e.g. a struct capturing a name for tracing) while
// ActionFunc covers the common case of a plain function literal.
type Action interface {
	Run(Context) Context
}

// ActionFunc adapts a func(Context) Context to the Action interface.
type ActionFunc func(Context) Context

// Run calls f.
func (f ActionFunc) Run(ctx Context) Context {
	return f(ctx)
}

// Guard is the single-method capability a transition's guard condition is
// modeled as: a pure Context -> bool predicate.
type Guard interface {
	Check(Context) bool
}

// GuardFunc adapts a func(Context) bool to the Guard interface.
type GuardFunc func(Context) bool

// Check calls f.
func (f GuardFunc) Check(ctx Context) bool {
	return f(ctx)
}

// runAll folds actions over ctx in order, in the engine's own processing
// loop (§4.5.4 step 4: "fold(actions, ctx, (a, c) -> a(c))").
func runAll(actions []Action, ctx Context) Context {
	for _, a := range actions {
		if a == nil {
			continue
		}
		ctx = a.Run(ctx)
	}
	return ctx
}
