package dag

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checks via errors.Is.
var (
	// ErrCycle means an edge would have closed a cycle.
	ErrCycle = errors.New("dependency graph would cycle")

	// ErrUnknownName means a dependency was referenced by a path no node declares.
	ErrUnknownName = errors.New("path does not exist in the graph")

	// ErrDuplicateOutput means two nodes declared the same path.
	ErrDuplicateOutput = errors.New("duplicate output")

	// ErrInvalidNode means a node was malformed or a handle was out of range.
	ErrInvalidNode = errors.New("invalid node")
)

// CycleError is returned when the edge From -> To would create a cycle.
type CycleError struct {
	From string
	To   string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrCycle, e.From, e.To)
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// UnknownNameError is returned when a dependency name is not in the index.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownName, e.Name)
}

func (e *UnknownNameError) Unwrap() error { return ErrUnknownName }

// DuplicateOutputError is returned when Output is already provided by a node.
type DuplicateOutputError struct {
	Output string
}

func (e *DuplicateOutputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDuplicateOutput, e.Output)
}

func (e *DuplicateOutputError) Unwrap() error { return ErrDuplicateOutput }
