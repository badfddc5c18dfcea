package workspace

import (
	"fmt"
	"strings"
)

// CyclicDependencyError is returned when members depend on each other,
// directly or transitively.
type CyclicDependencyError struct {
	// Cycle lists the members on the cycle, first and last being the same.
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency between workspace members: %s", strings.Join(e.Cycle, " -> "))
}

// DuplicateMemberError is returned when two member manifests share a name.
type DuplicateMemberError struct {
	Name string
	Dirs []string
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("workspace member %q is declared twice (%s)", e.Name, strings.Join(e.Dirs, ", "))
}
