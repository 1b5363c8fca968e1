package job

import (
	"errors"
	"fmt"

	"github.com/sarchlab/qre/estimate"
)

// Failure codes. Codes starting with InvalidInput are rejected before any
// search, codes starting with Estimation come from the search itself.
const (
	CodeInvalidJob                  = "InvalidInput.Job"
	CodeInvalidLogicalCounts        = "InvalidInput.LogicalCounts"
	CodeInvalidQubitParams          = "InvalidInput.QubitParams"
	CodeInvalidQECScheme            = "InvalidInput.QECScheme"
	CodeInvalidDistillationUnits    = "InvalidInput.DistillationUnitSpecifications"
	CodeInvalidErrorBudget          = "InvalidInput.ErrorBudget"
	CodeInvalidConstraints          = "InvalidInput.Constraints"
	CodeInvalidEstimateType         = "InvalidInput.EstimateType"
	CodeAlgorithmHasNoResources     = "Estimation.AlgorithmHasNoResources"
	CodeNoCodeParameter             = "Estimation.NoCodeParameter"
	CodeCannotComputeMagicStates    = "Estimation.CannotComputeMagicStates"
	CodeMaxDurationTooSmall         = "Estimation.MaxDurationTooSmall"
	CodeMaxPhysicalQubitsTooSmall   = "Estimation.MaxPhysicalQubitsTooSmall"
	CodeMultipleMagicStateTypes     = "Estimation.MultipleMagicStateTypes"
	CodeLogicalErrorRateComputation = "Estimation.LogicalErrorRate"
	CodePatchComputation            = "Estimation.LogicalPatch"
	CodeEstimationFailed            = "Estimation.Failed"
)

// Failure is the error bundle of a job. BatchIndex is set for batch jobs.
type Failure struct {
	Code       string `yaml:"code" json:"code"`
	Message    string `yaml:"message" json:"message"`
	BatchIndex *int   `yaml:"batchIndex,omitempty" json:"batchIndex,omitempty"`

	err error
}

func newFailure(code string, err error) *Failure {
	return &Failure{
		Code:    code,
		Message: err.Error(),
		err:     err,
	}
}

func (f *Failure) Error() string {
	if f.BatchIndex != nil {
		return fmt.Sprintf("item %d: %s: %s", *f.BatchIndex, f.Code, f.Message)
	}

	return f.Code + ": " + f.Message
}

func (f *Failure) Unwrap() error {
	return f.err
}

// AsFailure turns any error into a Failure with a matching code.
func AsFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	return newFailure(failureCode(err), err)
}

func failureCode(err error) string {
	var (
		cannotCompute *estimate.CannotComputeMagicStatesError
		codeParameter *estimate.CodeParameterComputationError
		logicalRate   *estimate.LogicalErrorRateComputationError
		patch         *estimate.PatchComputationError
	)

	switch {
	case errors.Is(err, estimate.ErrAlgorithmHasNoResources):
		return CodeAlgorithmHasNoResources
	case errors.Is(err, estimate.ErrMaxDurationTooSmall):
		return CodeMaxDurationTooSmall
	case errors.Is(err, estimate.ErrMaxPhysicalQubitsTooSmall):
		return CodeMaxPhysicalQubitsTooSmall
	case errors.Is(err, estimate.ErrMultipleMagicStatesNotSupported):
		return CodeMultipleMagicStateTypes
	case errors.Is(err, estimate.ErrBothDurationAndPhysicalQubitsProvided):
		return CodeInvalidConstraints
	case errors.As(err, &cannotCompute):
		return CodeCannotComputeMagicStates
	case errors.As(err, &codeParameter), errors.Is(err, estimate.ErrNoCodeParameter):
		return CodeNoCodeParameter
	case errors.As(err, &logicalRate):
		return CodeLogicalErrorRateComputation
	case errors.As(err, &patch):
		return CodePatchComputation
	default:
		return CodeEstimationFailed
	}
}
