package distillation

import "math"

// A Round is one distillation round of a factory. All units in a round are
// the same.
type Round[P any] struct {
	numUnits                      uint64
	failureProbabilityRequirement float64
	numOutputStates               uint64
	numInputStates                uint64
	duration                      uint64
	physicalQubits                uint64
	name                          string
	codeParameter                 P
	hasCodeParameter              bool
}

// NewRound creates a round that starts with a single unit.
func NewRound[P any](
	unit Unit[P],
	failureProbabilityRequirement float64,
	position int,
) *Round[P] {
	param, ok := unit.CodeParameter()

	return &Round[P]{
		numUnits:                      1,
		failureProbabilityRequirement: failureProbabilityRequirement,
		numOutputStates:               unit.NumOutputStates(),
		numInputStates:                unit.NumInputStates(),
		duration:                      unit.Duration(position),
		physicalQubits:                unit.PhysicalQubits(position),
		name:                          unit.Name(),
		codeParameter:                 param,
		hasCodeParameter:              ok,
	}
}

// AdjustNumUnitsTo sets the number of units to the smallest value that
// still produces the needed number of output states with the required
// probability.
func (r *Round[P]) AdjustNumUnitsTo(
	outputStatesNeeded uint64,
	failureProbability float64,
) error {
	r.numUnits = uint64(math.Ceil(
		float64(outputStatesNeeded) / float64(r.numOutputStates)))
	if r.numUnits == 0 {
		r.numUnits = 1
	}

	for r.NumOutputStates(failureProbability) < outputStatesNeeded {
		r.numUnits *= 2

		if r.numUnits >= MaxUnitsPerRound {
			return ErrUnreasonableHighNumberOfUnitsRequired
		}
	}

	upper := r.numUnits
	lower := r.numUnits / 2
	for lower < upper {
		r.numUnits = (lower + upper) / 2
		if r.NumOutputStates(failureProbability) >= outputStatesNeeded {
			upper = r.numUnits
		} else {
			lower = r.numUnits + 1
		}
	}
	r.numUnits = upper

	return nil
}

// NumOutputStates returns the number of output states the round produces
// with the required probability, given the failure probability of a single
// unit.
func (r *Round[P]) NumOutputStates(failureProbability float64) uint64 {
	if failureProbability == 0 && r.failureProbabilityRequirement == 0 {
		return r.numUnits * r.numOutputStates
	}

	succeeded := successQuantile(
		r.numUnits, failureProbability, r.failureProbabilityRequirement)

	return succeeded * r.numOutputStates
}

// NumUnits returns the number of units in the round.
func (r *Round[P]) NumUnits() uint64 {
	return r.numUnits
}

// PhysicalQubits returns the qubits used by all units of the round.
func (r *Round[P]) PhysicalQubits() uint64 {
	return r.numUnits * r.physicalQubits
}

// Duration returns the time the round takes in ns.
func (r *Round[P]) Duration() uint64 {
	return r.duration
}

// Name returns the name of the unit used in the round.
func (r *Round[P]) Name() string {
	return r.name
}

// CodeParameter returns the code parameter of the round's unit.
func (r *Round[P]) CodeParameter() (P, bool) {
	return r.codeParameter, r.hasCodeParameter
}
