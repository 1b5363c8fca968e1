// Package distillation builds round-based magic state factories out of
// distillation units.
package distillation

import "errors"

// A Unit is one distillation step that turns a number of noisy input
// states into fewer, less noisy output states.
type Unit[P any] interface {
	Name() string
	NumInputStates() uint64
	NumOutputStates() uint64

	// Duration and PhysicalQubits may depend on the round position. Position
	// 0 is the first round.
	Duration(position int) uint64
	PhysicalQubits(position int) uint64

	// CodeParameter returns false if the unit runs on physical qubits.
	CodeParameter() (P, bool)

	OutputErrorRate(inputErrorRate float64) (float64, error)
	FailureProbability(inputErrorRate float64) (float64, error)
}

// Errors that tell why a sequence of units cannot form a factory.
var (
	ErrLowFailureProbability = errors.New(
		"failure probability is not positive")
	ErrHighFailureProbability = errors.New(
		"failure probability is not below 1")
	ErrOutputErrorRateHigherThanInputErrorRate = errors.New(
		"output error rate is higher than input error rate")
	ErrUnreasonableHighNumberOfUnitsRequired = errors.New(
		"unreasonably high number of units required")
)

// MaxUnitsPerRound bounds the number of units a single round may use.
const MaxUnitsPerRound = 1_000_000_000_000_000
