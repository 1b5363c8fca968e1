package estimate

import (
	"errors"
	"fmt"
)

// Errors that are returned by the estimation.
var (
	ErrMultipleMagicStatesNotSupported = errors.New(
		"multiple magic state types are not supported")
	ErrAlgorithmHasNoResources = errors.New(
		"algorithm requires neither logical cycles nor magic states")
	ErrBothDurationAndPhysicalQubitsProvided = errors.New(
		"both max duration and max physical qubits are provided")
	ErrMaxDurationTooSmall = errors.New(
		"no solution found within the max duration")
	ErrMaxPhysicalQubitsTooSmall = errors.New(
		"no solution found within the max number of physical qubits")
	ErrNoCodeParameter = errors.New(
		"no code parameter achieves required logical error rate")
)

// CannotComputeMagicStatesError is returned when the factory builder
// cannot search for factories.
type CannotComputeMagicStatesError struct {
	RequiredErrorRate float64
	Err               error
}

func (e *CannotComputeMagicStatesError) Error() string {
	msg := fmt.Sprintf(
		"cannot compute magic states with error rate %g", e.RequiredErrorRate)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *CannotComputeMagicStatesError) Unwrap() error {
	return e.Err
}

// CodeParameterComputationError is returned when no code parameter meets
// the required logical error rate.
type CodeParameterComputationError struct {
	RequiredErrorRate float64
	Err               error
}

func (e *CodeParameterComputationError) Error() string {
	return fmt.Sprintf("cannot compute code parameter for error rate %g: %v",
		e.RequiredErrorRate, e.Err)
}

func (e *CodeParameterComputationError) Unwrap() error {
	return e.Err
}

// LogicalErrorRateComputationError is returned when the code cannot tell
// the logical error rate of a code parameter.
type LogicalErrorRateComputationError struct {
	Err error
}

func (e *LogicalErrorRateComputationError) Error() string {
	return "cannot compute logical error rate: " + e.Err.Error()
}

func (e *LogicalErrorRateComputationError) Unwrap() error {
	return e.Err
}

// PatchComputationError is returned when a logical patch cannot be built.
type PatchComputationError struct {
	Quantity string
	Err      error
}

func (e *PatchComputationError) Error() string {
	return fmt.Sprintf("cannot compute %s of logical patch: %v",
		e.Quantity, e.Err)
}

func (e *PatchComputationError) Unwrap() error {
	return e.Err
}
