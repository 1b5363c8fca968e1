// Package estimate computes the physical resources that a fault-tolerant
// quantum algorithm needs on a given error correction code and physical
// qubit.
package estimate

// ErrorCorrection models a family of error correction codes over qubits of
// type Q. A code parameter of type P selects one member of the family.
type ErrorCorrection[Q, P any] interface {
	// PhysicalQubits returns the number of physical qubits in one code
	// block.
	PhysicalQubits(param P) (uint64, error)

	// LogicalQubits returns the number of logical qubits hosted by one code
	// block.
	LogicalQubits(param P) (uint64, error)

	// LogicalCycleTime returns the time of one logical cycle in ns.
	LogicalCycleTime(qubit Q, param P) (uint64, error)

	// LogicalErrorRate returns the failure probability of one code block in
	// one logical cycle.
	LogicalErrorRate(qubit Q, param P) (float64, error)

	// CodeParameterRange lists the code parameters in increasing cost
	// order. If lowerBound is given, the list starts at it.
	CodeParameterRange(lowerBound *P) []P

	// CodeParameterCmp orders code parameters by implementation cost. It
	// returns a negative number if p1 is cheaper than p2, 0 if they are
	// equal, and a positive number otherwise.
	CodeParameterCmp(qubit Q, p1, p2 P) int
}

// Factory produces magic states.
type Factory[P any] interface {
	PhysicalQubits() uint64

	// Duration returns the time of one run in ns.
	Duration() uint64

	// NumOutputStates returns the number of magic states one run produces.
	NumOutputStates() uint64

	// NormalizedVolume is qubits times duration per output state.
	NormalizedVolume() float64

	// MaxCodeParameter returns the largest code parameter used by the
	// factory, if any.
	MaxCodeParameter() (P, bool)
}

// FactoryBuilder searches for magic state factories.
type FactoryBuilder[Q, P any, F Factory[P]] interface {
	// FindFactories returns nondominated factories that produce magic
	// states of the given type with at most outputErrorRate, using code
	// parameters up to maxCodeParameter. An empty result means that no
	// factory meets the requirement. An error means that the search could
	// not be run.
	FindFactories(
		code ErrorCorrection[Q, P],
		qubit Q,
		magicStateType int,
		outputErrorRate float64,
		maxCodeParameter P,
	) ([]F, error)

	// NumMagicStateTypes returns the number of magic state types the
	// builder can produce.
	NumMagicStateTypes() int
}

// Overhead describes the logical resources of an algorithm.
type Overhead interface {
	// LogicalQubits returns the number of logical qubits.
	LogicalQubits() uint64

	// LogicalDepth returns the number of logical cycles.
	LogicalDepth(budget *ErrorBudget) uint64

	// NumMagicStates returns the number of magic states of the given type.
	NumMagicStates(budget *ErrorBudget, magicStateType int) uint64

	// PruneErrorBudget may move unused parts of the budget to where they
	// are needed.
	PruneErrorBudget(budget *ErrorBudget, strategy ErrorBudgetStrategy)
}
