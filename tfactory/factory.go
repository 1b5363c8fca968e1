package tfactory

import (
	"github.com/sarchlab/qre/distillation"
	"github.com/sarchlab/qre/estimate"
	"github.com/sarchlab/qre/qubit"
)

// A TFactory is a round-based factory whose rounds run at code distances.
type TFactory = distillation.RoundBasedFactory[uint64]

// Estimation types for physical qubits, code distances, and T factories.
type (
	Estimation        = estimate.PhysicalResourceEstimation[*qubit.PhysicalQubit, uint64, *TFactory]
	EstimationBuilder = estimate.Builder[*qubit.PhysicalQubit, uint64, *TFactory]
	Result            = estimate.Result[*qubit.PhysicalQubit, uint64, *TFactory]
)

// MakeEstimationBuilder creates a builder for estimations with T factories.
func MakeEstimationBuilder() EstimationBuilder {
	return estimate.MakeBuilder[*qubit.PhysicalQubit, uint64, *TFactory]()
}

// failureProbabilityRequirement is the probability that a factory run does
// not produce its T states.
const failureProbabilityRequirement = 0.01

// DefaultTFactory passes the T states of the patch through a single trivial
// unit. It is used when the physical T gate is already good enough.
func DefaultTFactory(patch *Patch) *TFactory {
	unit := NewUnit(Trivial(), LogicalQubit(patch))
	round := distillation.NewRound[uint64](unit, 0, 0)
	rate := patch.LogicalErrorRate()

	return distillation.NewRoundBasedFactory(
		0,
		[]*distillation.Round[uint64]{round},
		[]float64{rate, rate},
		[]float64{0, 0},
	)
}
