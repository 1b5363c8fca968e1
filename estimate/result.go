package estimate

import "math"

// A FactoryPart is the set of identical factories that supply one type of
// magic state.
type FactoryPart[P any, F Factory[P]] struct {
	factory                 F
	numFactories            uint64
	numMagicStates          uint64
	requiredOutputErrorRate float64
}

// NewFactoryPart creates a factory part.
func NewFactoryPart[P any, F Factory[P]](
	factory F,
	numFactories uint64,
	numMagicStates uint64,
	requiredOutputErrorRate float64,
) *FactoryPart[P, F] {
	return &FactoryPart[P, F]{
		factory:                 factory,
		numFactories:            numFactories,
		numMagicStates:          numMagicStates,
		requiredOutputErrorRate: requiredOutputErrorRate,
	}
}

// Factory returns the factory that is copied.
func (p *FactoryPart[P, F]) Factory() F {
	return p.factory
}

// NumFactories returns the number of factory copies.
func (p *FactoryPart[P, F]) NumFactories() uint64 {
	return p.numFactories
}

// NumMagicStates returns the number of magic states the algorithm needs.
func (p *FactoryPart[P, F]) NumMagicStates() uint64 {
	return p.numMagicStates
}

// RequiredOutputErrorRate returns the error rate each magic state must
// meet.
func (p *FactoryPart[P, F]) RequiredOutputErrorRate() float64 {
	return p.requiredOutputErrorRate
}

// NumRuns returns how often each copy runs.
func (p *FactoryPart[P, F]) NumRuns() uint64 {
	perRun := p.numFactories * p.factory.NumOutputStates()

	return divCeil(p.numMagicStates, perRun)
}

// PhysicalQubits returns the qubits used by all copies.
func (p *FactoryPart[P, F]) PhysicalQubits() uint64 {
	return p.numFactories * p.factory.PhysicalQubits()
}

// Result is the outcome of an estimation.
type Result[Q, P any, F Factory[P]] struct {
	logicalPatch               *LogicalPatch[Q, P]
	numCycles                  uint64
	factoryParts               []*FactoryPart[P, F]
	requiredLogicalErrorRate   float64
	errorBudget                *ErrorBudget
	algorithmicLogicalQubits   uint64
	algorithmicLogicalDepth    uint64
	physicalQubitsForAlgorithm uint64
	numMagicStates             []uint64
}

// LogicalPatch returns the patch that hosts the algorithm's logical qubits.
func (r *Result[Q, P, F]) LogicalPatch() *LogicalPatch[Q, P] {
	return r.logicalPatch
}

// NumCycles returns the number of logical cycles of the algorithm.
func (r *Result[Q, P, F]) NumCycles() uint64 {
	return r.numCycles
}

// FactoryParts returns one entry per magic state type. The entry is nil if
// the algorithm needs no magic states of that type.
func (r *Result[Q, P, F]) FactoryParts() []*FactoryPart[P, F] {
	return r.factoryParts
}

// FactoryPart returns the first factory part, or nil if there is none.
func (r *Result[Q, P, F]) FactoryPart() *FactoryPart[P, F] {
	for _, part := range r.factoryParts {
		if part != nil {
			return part
		}
	}

	return nil
}

// RequiredLogicalErrorRate returns the error rate each logical qubit must
// meet per cycle.
func (r *Result[Q, P, F]) RequiredLogicalErrorRate() float64 {
	return r.requiredLogicalErrorRate
}

// RequiredLogicalMagicStateErrorRate returns the error rate each magic
// state must meet. It returns false if no magic states are needed.
func (r *Result[Q, P, F]) RequiredLogicalMagicStateErrorRate() (float64, bool) {
	part := r.FactoryPart()
	if part == nil {
		return 0, false
	}

	return part.RequiredOutputErrorRate(), true
}

// ErrorBudget returns the error budget the result was computed with.
func (r *Result[Q, P, F]) ErrorBudget() *ErrorBudget {
	return r.errorBudget
}

// AlgorithmicLogicalQubits returns the logical qubits of the algorithm.
func (r *Result[Q, P, F]) AlgorithmicLogicalQubits() uint64 {
	return r.algorithmicLogicalQubits
}

// AlgorithmicLogicalDepth returns the logical depth of the algorithm before
// it is stretched to wait for magic states.
func (r *Result[Q, P, F]) AlgorithmicLogicalDepth() uint64 {
	return r.algorithmicLogicalDepth
}

// NumMagicStates returns the number of magic states per type.
func (r *Result[Q, P, F]) NumMagicStates() []uint64 {
	return r.numMagicStates
}

// PhysicalQubitsForAlgorithm returns the qubits that host logical qubits.
func (r *Result[Q, P, F]) PhysicalQubitsForAlgorithm() uint64 {
	return r.physicalQubitsForAlgorithm
}

// PhysicalQubitsForFactories returns the qubits used by all factories.
func (r *Result[Q, P, F]) PhysicalQubitsForFactories() uint64 {
	var sum uint64
	for _, part := range r.factoryParts {
		if part != nil {
			sum += part.PhysicalQubits()
		}
	}

	return sum
}

// PhysicalQubits returns the total number of physical qubits.
func (r *Result[Q, P, F]) PhysicalQubits() uint64 {
	return r.physicalQubitsForAlgorithm + r.PhysicalQubitsForFactories()
}

// Runtime returns the runtime of the algorithm in ns.
func (r *Result[Q, P, F]) Runtime() uint64 {
	return r.logicalPatch.LogicalCycleTime() * r.numCycles
}

// RQOPS returns the number of reliable logical operations per second.
func (r *Result[Q, P, F]) RQOPS() uint64 {
	return uint64(math.Ceil(float64(r.algorithmicLogicalQubits) *
		r.logicalPatch.LogicalCyclesPerSecond()))
}

func divCeil(a, b uint64) uint64 {
	if b == 0 {
		return math.MaxUint64
	}

	q := a / b
	if a%b != 0 {
		q++
	}

	return q
}
