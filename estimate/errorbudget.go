package estimate

import "fmt"

// ErrorBudget splits the tolerated failure probability of an algorithm
// into the part spent on logical qubits, on magic states, and on rotation
// synthesis.
type ErrorBudget struct {
	logical     float64
	magicStates float64
	rotations   float64
}

// NewErrorBudget creates an error budget from its parts.
func NewErrorBudget(logical, magicStates, rotations float64) *ErrorBudget {
	return &ErrorBudget{
		logical:     logical,
		magicStates: magicStates,
		rotations:   rotations,
	}
}

// Logical returns the budget for logical qubit errors.
func (b *ErrorBudget) Logical() float64 {
	return b.logical
}

// MagicStates returns the budget for faulty magic states.
func (b *ErrorBudget) MagicStates() float64 {
	return b.magicStates
}

// Rotations returns the budget for rotation synthesis.
func (b *ErrorBudget) Rotations() float64 {
	return b.rotations
}

// Total returns the sum of all parts.
func (b *ErrorBudget) Total() float64 {
	return b.logical + b.magicStates + b.rotations
}

// SetLogical changes the budget for logical qubit errors.
func (b *ErrorBudget) SetLogical(v float64) {
	b.logical = v
}

// SetMagicStates changes the budget for faulty magic states.
func (b *ErrorBudget) SetMagicStates(v float64) {
	b.magicStates = v
}

// SetRotations changes the budget for rotation synthesis.
func (b *ErrorBudget) SetRotations(v float64) {
	b.rotations = v
}

// Clone returns an independent copy.
func (b *ErrorBudget) Clone() *ErrorBudget {
	c := *b
	return &c
}

func (b *ErrorBudget) String() string {
	return fmt.Sprintf("logical: %g, magic states: %g, rotations: %g",
		b.logical, b.magicStates, b.rotations)
}

// ErrorBudgetStrategy tells whether the estimation may shift unused error
// budget between its parts.
type ErrorBudgetStrategy int

const (
	// Static keeps the error budget as given.
	Static ErrorBudgetStrategy = iota

	// PruneLogicalAndRotations shrinks the logical and rotation parts to
	// what the chosen code parameter and rotation synthesis actually need
	// and moves the rest to magic states.
	PruneLogicalAndRotations
)

func (s ErrorBudgetStrategy) String() string {
	switch s {
	case Static:
		return "static"
	case PruneLogicalAndRotations:
		return "pruneLogicalAndRotations"
	default:
		return fmt.Sprintf("ErrorBudgetStrategy(%d)", int(s))
	}
}

// ParseErrorBudgetStrategy accepts the names returned by String.
func ParseErrorBudgetStrategy(s string) (ErrorBudgetStrategy, error) {
	switch s {
	case "", "static", "Static":
		return Static, nil
	case "pruneLogicalAndRotations", "PruneLogicalAndRotations",
		"prune_logical_and_rotations", "prune":
		return PruneLogicalAndRotations, nil
	default:
		return Static, fmt.Errorf("unknown error budget strategy %q", s)
	}
}
