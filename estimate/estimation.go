package estimate

import (
	"math"
	"math/bits"

	"github.com/go-logr/logr"
)

// PhysicalResourceEstimation finds code parameters and magic state
// factories for an algorithm.
type PhysicalResourceEstimation[Q, P any, F Factory[P]] struct {
	code           ErrorCorrection[Q, P]
	qubit          Q
	factoryBuilder FactoryBuilder[Q, P, F]
	overhead       Overhead

	logicalDepthFactor *float64
	maxFactories       *uint64
	maxDuration        *uint64
	maxPhysicalQubits  *uint64
	strategy           ErrorBudgetStrategy

	log logr.Logger
}

// Builder can build physical resource estimations.
type Builder[Q, P any, F Factory[P]] struct {
	code           ErrorCorrection[Q, P]
	qubit          Q
	factoryBuilder FactoryBuilder[Q, P, F]
	overhead       Overhead

	logicalDepthFactor *float64
	maxFactories       *uint64
	maxDuration        *uint64
	maxPhysicalQubits  *uint64
	strategy           ErrorBudgetStrategy

	log logr.Logger
}

// MakeBuilder creates a new Builder.
func MakeBuilder[Q, P any, F Factory[P]]() Builder[Q, P, F] {
	return Builder[Q, P, F]{
		log: logr.Discard(),
	}
}

// WithErrorCorrection sets the code family.
func (b Builder[Q, P, F]) WithErrorCorrection(
	code ErrorCorrection[Q, P],
) Builder[Q, P, F] {
	b.code = code
	return b
}

// WithQubit sets the physical qubit.
func (b Builder[Q, P, F]) WithQubit(qubit Q) Builder[Q, P, F] {
	b.qubit = qubit
	return b
}

// WithFactoryBuilder sets the builder that searches for factories.
func (b Builder[Q, P, F]) WithFactoryBuilder(
	factoryBuilder FactoryBuilder[Q, P, F],
) Builder[Q, P, F] {
	b.factoryBuilder = factoryBuilder
	return b
}

// WithOverhead sets the logical resources of the algorithm.
func (b Builder[Q, P, F]) WithOverhead(overhead Overhead) Builder[Q, P, F] {
	b.overhead = overhead
	return b
}

// WithLogicalDepthFactor stretches the logical depth of the algorithm.
func (b Builder[Q, P, F]) WithLogicalDepthFactor(f float64) Builder[Q, P, F] {
	b.logicalDepthFactor = &f
	return b
}

// WithMaxFactories limits the number of factory copies.
func (b Builder[Q, P, F]) WithMaxFactories(n uint64) Builder[Q, P, F] {
	b.maxFactories = &n
	return b
}

// WithMaxDuration limits the runtime in ns and makes Estimate minimize
// the number of physical qubits.
func (b Builder[Q, P, F]) WithMaxDuration(d uint64) Builder[Q, P, F] {
	b.maxDuration = &d
	return b
}

// WithMaxPhysicalQubits limits the number of physical qubits and makes
// Estimate minimize the runtime.
func (b Builder[Q, P, F]) WithMaxPhysicalQubits(n uint64) Builder[Q, P, F] {
	b.maxPhysicalQubits = &n
	return b
}

// WithErrorBudgetStrategy sets how the error budget may be rebalanced.
func (b Builder[Q, P, F]) WithErrorBudgetStrategy(
	s ErrorBudgetStrategy,
) Builder[Q, P, F] {
	b.strategy = s
	return b
}

// WithLogger sets the logger.
func (b Builder[Q, P, F]) WithLogger(log logr.Logger) Builder[Q, P, F] {
	b.log = log
	return b
}

// Build creates the estimation.
func (b Builder[Q, P, F]) Build() *PhysicalResourceEstimation[Q, P, F] {
	if b.code == nil {
		panic("error correction is not set")
	}

	if b.factoryBuilder == nil {
		panic("factory builder is not set")
	}

	if b.overhead == nil {
		panic("overhead is not set")
	}

	return &PhysicalResourceEstimation[Q, P, F]{
		code:               b.code,
		qubit:              b.qubit,
		factoryBuilder:     b.factoryBuilder,
		overhead:           b.overhead,
		logicalDepthFactor: b.logicalDepthFactor,
		maxFactories:       b.maxFactories,
		maxDuration:        b.maxDuration,
		maxPhysicalQubits:  b.maxPhysicalQubits,
		strategy:           b.strategy,
		log:                b.log,
	}
}

// ErrorCorrection returns the code family.
func (e *PhysicalResourceEstimation[Q, P, F]) ErrorCorrection() ErrorCorrection[Q, P] {
	return e.code
}

// Qubit returns the physical qubit.
func (e *PhysicalResourceEstimation[Q, P, F]) Qubit() Q {
	return e.qubit
}

// Overhead returns the logical resources of the algorithm.
func (e *PhysicalResourceEstimation[Q, P, F]) Overhead() Overhead {
	return e.overhead
}

// ErrorBudgetStrategy returns how the error budget may be rebalanced.
func (e *PhysicalResourceEstimation[Q, P, F]) ErrorBudgetStrategy() ErrorBudgetStrategy {
	return e.strategy
}

// Estimate returns a single estimate. Without constraints, the first code
// parameter in increasing cost order that admits a factory is used. With a
// max duration, the result with the fewest physical qubits is returned.
// With a max number of physical qubits, the fastest result is returned.
func (e *PhysicalResourceEstimation[Q, P, F]) Estimate(
	budget *ErrorBudget,
) (*Result[Q, P, F], error) {
	switch {
	case e.maxDuration != nil && e.maxPhysicalQubits != nil:
		return nil, ErrBothDurationAndPhysicalQubitsProvided
	case e.maxDuration != nil:
		return e.EstimateWithMaxDuration(budget, *e.maxDuration)
	case e.maxPhysicalQubits != nil:
		return e.EstimateWithMaxNumQubits(budget, *e.maxPhysicalQubits)
	default:
		return e.EstimateWithoutRestrictions(budget)
	}
}

type initialValues[P any] struct {
	minCodeParameter         P
	numCycles                uint64
	requiredLogicalErrorRate float64
	requiredMagicStateRate   float64
}

func (e *PhysicalResourceEstimation[Q, P, F]) computeInitialValues(
	budget *ErrorBudget,
) (*initialValues[P], error) {
	numCycles, err := e.computeNumCycles(budget)
	if err != nil {
		return nil, err
	}

	requiredMagicStateRate := budget.MagicStates() /
		float64(e.overhead.NumMagicStates(budget, 0))
	requiredLogicalErrorRate := e.requiredLogicalErrorRate(
		budget.Logical(), numCycles)

	minCodeParameter, err := e.computeCodeParameter(requiredLogicalErrorRate)
	if err != nil {
		return nil, err
	}

	return &initialValues[P]{
		minCodeParameter:         minCodeParameter,
		numCycles:                numCycles,
		requiredLogicalErrorRate: requiredLogicalErrorRate,
		requiredMagicStateRate:   requiredMagicStateRate,
	}, nil
}

func (e *PhysicalResourceEstimation[Q, P, F]) computeNumCycles(
	budget *ErrorBudget,
) (uint64, error) {
	numCycles := e.overhead.LogicalDepth(budget)

	if e.logicalDepthFactor != nil {
		numCycles = uint64(math.Ceil(float64(numCycles) * *e.logicalDepthFactor))
	}

	if numCycles == 0 {
		for i := 0; i < e.factoryBuilder.NumMagicStateTypes(); i++ {
			if e.overhead.NumMagicStates(budget, i) != 0 {
				return numCycles, nil
			}
		}

		return 0, ErrAlgorithmHasNoResources
	}

	return numCycles, nil
}

// volume is the number of logical qubit cycles. It is a float since it
// may exceed uint64 for large depths.
func (e *PhysicalResourceEstimation[Q, P, F]) volume(numCycles uint64) float64 {
	return float64(e.overhead.LogicalQubits()) * float64(numCycles)
}

func (e *PhysicalResourceEstimation[Q, P, F]) requiredLogicalErrorRate(
	logicalBudget float64,
	numCycles uint64,
) float64 {
	return logicalBudget / e.volume(numCycles)
}

func (e *PhysicalResourceEstimation[Q, P, F]) computeCodeParameter(
	requiredRate float64,
) (P, error) {
	param, err := ComputeCodeParameter(e.code, e.qubit, requiredRate)
	if err != nil {
		return param, &CodeParameterComputationError{
			RequiredErrorRate: requiredRate,
			Err:               err,
		}
	}

	return param, nil
}

func (e *PhysicalResourceEstimation[Q, P, F]) logicalCyclesForCodeParameter(
	logicalBudget float64,
	param P,
) (uint64, error) {
	rate, err := e.code.LogicalErrorRate(e.qubit, param)
	if err != nil {
		return 0, &LogicalErrorRateComputationError{Err: err}
	}

	cycles := math.Floor(
		logicalBudget / (float64(e.overhead.LogicalQubits()) * rate))
	if cycles >= math.MaxUint64 {
		return math.MaxUint64, nil
	}

	return uint64(cycles), nil
}

func (e *PhysicalResourceEstimation[Q, P, F]) numAlgorithmicPhysicalQubits(
	patch *LogicalPatch[Q, P],
) uint64 {
	numPatches := divCeil(e.overhead.LogicalQubits(), patch.LogicalQubits())

	return numPatches * patch.PhysicalQubits()
}

// numFactories returns the number of factory copies needed to produce all
// magic states within numCycles.
func (e *PhysicalResourceEstimation[Q, P, F]) numFactories(
	patch *LogicalPatch[Q, P],
	magicStateType int,
	factory F,
	budget *ErrorBudget,
	numCycles uint64,
) uint64 {
	numMagicStates := e.overhead.NumMagicStates(budget, magicStateType)

	// A factory that takes no time keeps up on its own.
	if factory.Duration() == 0 {
		return 1
	}

	hi, totalDuration := bits.Mul64(numCycles, patch.LogicalCycleTime())
	if hi == 0 {
		perRun := (totalDuration / factory.Duration()) * factory.NumOutputStates()
		return divCeil(numMagicStates, perRun)
	}

	perCycle := float64(numMagicStates) /
		(float64(factory.NumOutputStates()) * float64(numCycles))
	durationFraction := float64(factory.Duration()) /
		float64(patch.LogicalCycleTime())

	return uint64(math.Ceil(perCycle * durationFraction))
}

// numCyclesForMagicStates returns the number of logical cycles that the
// given number of factory copies need to produce all magic states.
func (e *PhysicalResourceEstimation[Q, P, F]) numCyclesForMagicStates(
	magicStateType int,
	numFactories uint64,
	factory F,
	patch *LogicalPatch[Q, P],
	budget *ErrorBudget,
) uint64 {
	perRun := numFactories * factory.NumOutputStates()
	runs := divCeil(e.overhead.NumMagicStates(budget, magicStateType), perRun)

	return divCeil(runs*factory.Duration(), patch.LogicalCycleTime())
}

func (e *PhysicalResourceEstimation[Q, P, F]) findFactories(
	magicStateType int,
	requiredRate float64,
	param P,
) ([]F, error) {
	factories, err := e.factoryBuilder.FindFactories(
		e.code, e.qubit, magicStateType, requiredRate, param)
	if err != nil {
		return nil, &CannotComputeMagicStatesError{
			RequiredErrorRate: requiredRate,
			Err:               err,
		}
	}

	return factories, nil
}

func (e *PhysicalResourceEstimation[Q, P, F]) findHighestCodeParameter(
	factories []F,
) *P {
	var highest *P

	for _, f := range factories {
		p, ok := f.MaxCodeParameter()
		if !ok {
			continue
		}

		if highest == nil || e.code.CodeParameterCmp(e.qubit, p, *highest) > 0 {
			highest = &p
		}
	}

	return highest
}

// needsNewFactories tells whether the factories found for the last code
// parameter may use code parameters that are too expensive for param.
func (e *PhysicalResourceEstimation[Q, P, F]) needsNewFactories(
	last *P,
	param P,
) bool {
	return last == nil || e.code.CodeParameterCmp(e.qubit, *last, param) > 0
}

type factoryForCycles[F any] struct {
	factory   F
	numCycles uint64
}

func lessFactoryForCycles[P any, F Factory[P]](a, b factoryForCycles[F]) bool {
	va, vb := a.factory.NormalizedVolume(), b.factory.NormalizedVolume()
	if va != vb {
		return va < vb
	}

	return a.numCycles < b.numCycles
}

// pickFactoriesWithNumCycles returns the factories that finish one run
// within maxCycles.
func pickFactoriesWithNumCycles[Q, P any, F Factory[P]](
	factories []F,
	patch *LogicalPatch[Q, P],
	maxCycles uint64,
) []factoryForCycles[F] {
	var picked []factoryForCycles[F]

	for _, f := range factories {
		n := divCeil(f.Duration(), patch.LogicalCycleTime())
		if n <= maxCycles {
			picked = append(picked, factoryForCycles[F]{factory: f, numCycles: n})
		}
	}

	return picked
}

func minFactoryForCycles[P any, F Factory[P]](
	candidates []factoryForCycles[F],
) (factoryForCycles[F], bool) {
	var best factoryForCycles[F]
	if len(candidates) == 0 {
		return best, false
	}

	best = candidates[0]
	for _, c := range candidates[1:] {
		if lessFactoryForCycles[P](c, best) {
			best = c
		}
	}

	return best, true
}

func (e *PhysicalResourceEstimation[Q, P, F]) newResult(
	patch *LogicalPatch[Q, P],
	budget *ErrorBudget,
	numCycles uint64,
	parts []*FactoryPart[P, F],
	requiredLogicalErrorRate float64,
) *Result[Q, P, F] {
	numTypes := e.factoryBuilder.NumMagicStateTypes()
	numMagicStates := make([]uint64, numTypes)
	for i := range numMagicStates {
		numMagicStates[i] = e.overhead.NumMagicStates(budget, i)
	}

	return &Result[Q, P, F]{
		logicalPatch:               patch,
		numCycles:                  numCycles,
		factoryParts:               parts,
		requiredLogicalErrorRate:   requiredLogicalErrorRate,
		errorBudget:                budget.Clone(),
		algorithmicLogicalQubits:   e.overhead.LogicalQubits(),
		algorithmicLogicalDepth:    e.overhead.LogicalDepth(budget),
		physicalQubitsForAlgorithm: e.numAlgorithmicPhysicalQubits(patch),
		numMagicStates:             numMagicStates,
	}
}

func (e *PhysicalResourceEstimation[Q, P, F]) newResultWithoutFactories(
	patch *LogicalPatch[Q, P],
	budget *ErrorBudget,
	numCycles uint64,
	requiredLogicalErrorRate float64,
) *Result[Q, P, F] {
	parts := make([]*FactoryPart[P, F], e.factoryBuilder.NumMagicStateTypes())

	return e.newResult(patch, budget, numCycles, parts, requiredLogicalErrorRate)
}
