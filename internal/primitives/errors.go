package primitives

import "fmt"

// InvalidDefinitionError is raised from Build when the argument is not a
// composite root, or is a composite with no substates.
type InvalidDefinitionError struct {
	Reason string
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("invalid definition: %s", e.Reason)
}

// NotValidInitialError is raised from Build when a composite's Initial does
// not name a descendant of that composite.
type NotValidInitialError struct {
	Initial string
	Parent  string
}

func (e *NotValidInitialError) Error() string {
	return fmt.Sprintf("state %q: initial %q is not a descendant", e.Parent, e.Initial)
}

// NotDefinedStateError is raised from Build when a transition target names
// an unknown state.
type NotDefinedStateError struct {
	Name string
}

func (e *NotDefinedStateError) Error() string {
	return fmt.Sprintf("state %q is not defined", e.Name)
}

// DuplicatedStateError is raised from Build when the same state name is
// used in more than one place in the definition tree.
type DuplicatedStateError struct {
	Names []string
}

func (e *DuplicatedStateError) Error() string {
	return fmt.Sprintf("duplicated state names: %v", e.Names)
}

// NotRunningError is raised from Machine.Dispatch when the machine has
// already reached its top-level final state.
type NotRunningError struct{}

func (e *NotRunningError) Error() string {
	return "machine is not running"
}
