package distillation

import (
	"fmt"
	"slices"
)

// PhysicalQubitCalculation selects how the qubits of a factory's rounds are
// combined.
type PhysicalQubitCalculation int

const (
	// Max shares the qubits among rounds.
	Max PhysicalQubitCalculation = iota

	// Sum gives every round its own qubits.
	Sum
)

func (c PhysicalQubitCalculation) String() string {
	switch c {
	case Max:
		return "max"
	case Sum:
		return "sum"
	default:
		return fmt.Sprintf("PhysicalQubitCalculation(%d)", int(c))
	}
}

// A RoundBasedFactory runs a sequence of distillation rounds, each round
// feeding its output states into the next one.
type RoundBasedFactory[P any] struct {
	length                           int
	failureProbabilityRequirement    float64
	rounds                           []*Round[P]
	inputErrorRateBeforeEachRound    []float64
	failureProbabilityAfterEachRound []float64
	physicalQubitCalculation         PhysicalQubitCalculation
}

// NewRoundBasedFactory assembles a factory from rounds whose number of
// units is already known.
func NewRoundBasedFactory[P any](
	failureProbabilityRequirement float64,
	rounds []*Round[P],
	inputErrorRateBeforeEachRound []float64,
	failureProbabilityAfterEachRound []float64,
) *RoundBasedFactory[P] {
	return &RoundBasedFactory[P]{
		length:                           len(rounds),
		failureProbabilityRequirement:    failureProbabilityRequirement,
		rounds:                           rounds,
		inputErrorRateBeforeEachRound:    inputErrorRateBeforeEachRound,
		failureProbabilityAfterEachRound: failureProbabilityAfterEachRound,
	}
}

// Build creates a factory that uses one round per unit and sizes every
// round such that the factory produces at least one batch of output states
// with the required success probability. Units must not be empty.
func Build[P any](
	units []Unit[P],
	initialInputErrorRate float64,
	failureProbabilityRequirement float64,
) (*RoundBasedFactory[P], error) {
	f := &RoundBasedFactory[P]{
		length:                        len(units),
		failureProbabilityRequirement: failureProbabilityRequirement,
		rounds:                        make([]*Round[P], 0, len(units)),
		inputErrorRateBeforeEachRound: make([]float64, 1, len(units)+1),
	}

	f.inputErrorRateBeforeEachRound[0] = initialInputErrorRate
	f.failureProbabilityAfterEachRound = make([]float64, len(units)+1)
	for i := range f.failureProbabilityAfterEachRound {
		f.failureProbabilityAfterEachRound[i] = 1
	}

	if err := f.computeUnitsPerRound(units, 1); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *RoundBasedFactory[P]) addRounds(units []Unit[P]) error {
	requirement := f.failureProbabilityRequirement / float64(f.length)

	for _, unit := range units {
		input := f.inputErrorRateBeforeEachRound[len(f.inputErrorRateBeforeEachRound)-1]

		output, err := unit.OutputErrorRate(input)
		if err != nil {
			return err
		}

		if output > input {
			return ErrOutputErrorRateHigherThanInputErrorRate
		}

		f.rounds = append(f.rounds, NewRound(unit, requirement, len(f.rounds)))
		f.inputErrorRateBeforeEachRound = append(
			f.inputErrorRateBeforeEachRound, output)
	}

	return nil
}

func (f *RoundBasedFactory[P]) computeUnitsPerRound(
	units []Unit[P],
	multiplier uint64,
) error {
	if err := f.addRounds(units); err != nil {
		return err
	}

	if f.length == 0 {
		return nil
	}

	needed := f.rounds[f.length-1].numOutputStates * multiplier

	for i := f.length - 1; i >= 0; i-- {
		q, err := units[i].FailureProbability(f.inputErrorRateBeforeEachRound[i])
		if err != nil {
			return err
		}

		if q <= 0 {
			return ErrLowFailureProbability
		}

		if q >= 1 {
			return ErrHighFailureProbability
		}

		f.failureProbabilityAfterEachRound[i] = q

		round := f.rounds[i]
		if err := round.AdjustNumUnitsTo(needed, q); err != nil {
			return err
		}

		needed = round.numInputStates * round.NumUnits()
	}

	return nil
}

// SetPhysicalQubitCalculation changes how the qubits of the rounds are
// combined.
func (f *RoundBasedFactory[P]) SetPhysicalQubitCalculation(
	c PhysicalQubitCalculation,
) {
	f.physicalQubitCalculation = c
}

// PhysicalQubitCalculation returns how the qubits of the rounds are
// combined.
func (f *RoundBasedFactory[P]) PhysicalQubitCalculation() PhysicalQubitCalculation {
	return f.physicalQubitCalculation
}

// Rounds returns the rounds of the factory.
func (f *RoundBasedFactory[P]) Rounds() []*Round[P] {
	return f.rounds
}

// NumRounds returns the number of rounds.
func (f *RoundBasedFactory[P]) NumRounds() int {
	return f.length
}

// NumUnitsPerRound returns the number of units in each round.
func (f *RoundBasedFactory[P]) NumUnitsPerRound() []uint64 {
	out := make([]uint64, 0, len(f.rounds))
	for _, r := range f.rounds {
		out = append(out, r.NumUnits())
	}

	return out
}

// PhysicalQubitsPerRound returns the qubits used by each round.
func (f *RoundBasedFactory[P]) PhysicalQubitsPerRound() []uint64 {
	out := make([]uint64, 0, len(f.rounds))
	for _, r := range f.rounds {
		out = append(out, r.PhysicalQubits())
	}

	return out
}

// DurationPerRound returns the time each round takes in ns.
func (f *RoundBasedFactory[P]) DurationPerRound() []uint64 {
	out := make([]uint64, 0, len(f.rounds))
	for _, r := range f.rounds {
		out = append(out, r.Duration())
	}

	return out
}

// UnitNames returns the name of the unit used in each round.
func (f *RoundBasedFactory[P]) UnitNames() []string {
	out := make([]string, 0, len(f.rounds))
	for _, r := range f.rounds {
		out = append(out, r.Name())
	}

	return out
}

// CodeParameterPerRound returns the code parameter of each round. Rounds
// on physical qubits report nil.
func (f *RoundBasedFactory[P]) CodeParameterPerRound() []*P {
	out := make([]*P, 0, len(f.rounds))
	for _, r := range f.rounds {
		if p, ok := r.CodeParameter(); ok {
			out = append(out, &p)
		} else {
			out = append(out, nil)
		}
	}

	return out
}

// InputErrorRate returns the error rate of the states fed into the first
// round.
func (f *RoundBasedFactory[P]) InputErrorRate() float64 {
	return f.inputErrorRateBeforeEachRound[0]
}

// OutputErrorRate returns the error rate of the produced states.
func (f *RoundBasedFactory[P]) OutputErrorRate() float64 {
	return f.inputErrorRateBeforeEachRound[f.length]
}

// NumInputStates returns the number of states the first round consumes.
func (f *RoundBasedFactory[P]) NumInputStates() uint64 {
	if len(f.rounds) == 0 {
		return 0
	}

	return f.rounds[0].numInputStates * f.rounds[0].NumUnits()
}

// PhysicalQubits returns the qubits the factory needs.
func (f *RoundBasedFactory[P]) PhysicalQubits() uint64 {
	perRound := f.PhysicalQubitsPerRound()
	if len(perRound) == 0 {
		return 0
	}

	if f.physicalQubitCalculation == Sum {
		var sum uint64
		for _, q := range perRound {
			sum += q
		}

		return sum
	}

	return slices.Max(perRound)
}

// Duration returns the time one run of the factory takes in ns.
func (f *RoundBasedFactory[P]) Duration() uint64 {
	var sum uint64
	for _, r := range f.rounds {
		sum += r.Duration()
	}

	return sum
}

// NumOutputStates returns the number of states one run produces with the
// required success probability.
func (f *RoundBasedFactory[P]) NumOutputStates() uint64 {
	last := f.rounds[f.length-1]

	return last.NumOutputStates(f.failureProbabilityAfterEachRound[f.length-1])
}

// NormalizedQubits returns the qubits per produced output state.
func (f *RoundBasedFactory[P]) NormalizedQubits() float64 {
	return float64(f.PhysicalQubits()) / float64(f.NumOutputStates())
}

// NormalizedVolume returns qubits times duration per produced output
// state.
func (f *RoundBasedFactory[P]) NormalizedVolume() float64 {
	return float64(f.PhysicalQubits()) * float64(f.Duration()) /
		float64(f.NumOutputStates())
}

// MaxCodeParameter returns the code parameter of the last round.
func (f *RoundBasedFactory[P]) MaxCodeParameter() (P, bool) {
	return f.rounds[f.length-1].CodeParameter()
}
