package estimate

import (
	"errors"
	"math"
)

var errNoSuitableFactory = errors.New("no suitable factory")

// EstimateWithoutRestrictions increases the number of logical cycles until
// the first code parameter that meets the resulting logical error rate
// also admits a factory that keeps up with the algorithm. If the code
// parameters run out before any factory fits, the error tells the magic
// state error rate that could not be reached.
func (e *PhysicalResourceEstimation[Q, P, F]) EstimateWithoutRestrictions(
	budget *ErrorBudget,
) (*Result[Q, P, F], error) {
	numCycles, err := e.computeNumCycles(budget)
	if err != nil {
		return nil, err
	}

	// The budget is pruned with the configured strategy. A bound on the
	// number of factories only changes how the cycle bound is computed.
	strategy := e.strategy
	if e.maxFactories != nil {
		strategy = Static
	}

	var (
		lastParam      *P
		noFactoryFound error
	)

	for {
		b := budget.Clone()
		e.overhead.PruneErrorBudget(b, e.strategy)

		requiredLogicalErrorRate := e.requiredLogicalErrorRate(b.Logical(), numCycles)

		param, err := e.computeCodeParameter(requiredLogicalErrorRate)
		if err == nil && lastParam != nil &&
			e.code.CodeParameterCmp(e.qubit, param, *lastParam) <= 0 {
			param, err = e.nextCodeParameter(*lastParam, requiredLogicalErrorRate)
		}

		var exhausted *CodeParameterComputationError
		if errors.As(err, &exhausted) && noFactoryFound != nil {
			return nil, noFactoryFound
		}

		if err != nil {
			return nil, err
		}
		lastParam = &param

		var maxCycles uint64
		switch strategy {
		case PruneLogicalAndRotations:
			rate, err := e.code.LogicalErrorRate(e.qubit, param)
			if err != nil {
				return nil, &LogicalErrorRateComputationError{Err: err}
			}

			newLogical := rate * e.volume(numCycles)
			b.SetMagicStates(b.MagicStates() + b.Logical() - newLogical)
			b.SetLogical(newLogical)
			maxCycles = numCycles
		default:
			maxCycles, err = e.logicalCyclesForCodeParameter(b.Logical(), param)
			if err != nil {
				return nil, err
			}
		}

		patch, err := NewLogicalPatch(e.code, param, e.qubit)
		if err != nil {
			return nil, err
		}

		e.log.V(1).Info("trying code parameter",
			"codeParameter", param,
			"numCycles", numCycles,
			"maxCycles", maxCycles)

		parts, requiredCycles, err := e.computeFactoryParts(
			patch, numCycles, maxCycles, b)
		switch {
		case err == nil:
			return e.newResult(patch, b, requiredCycles, parts,
				requiredLogicalErrorRate), nil
		case errors.Is(err, errNoSuitableFactory):
			noFactoryFound = &CannotComputeMagicStatesError{
				RequiredErrorRate: b.MagicStates() /
					float64(e.overhead.NumMagicStates(b, 0)),
			}

			if maxCycles == math.MaxUint64 {
				return nil, noFactoryFound
			}

			numCycles = maxCycles + 1
		default:
			return nil, err
		}
	}
}

// nextCodeParameter returns the cheapest code parameter that is more
// expensive than last.
func (e *PhysicalResourceEstimation[Q, P, F]) nextCodeParameter(
	last P,
	requiredRate float64,
) (P, error) {
	for _, param := range e.code.CodeParameterRange(&last) {
		if e.code.CodeParameterCmp(e.qubit, param, last) > 0 {
			return param, nil
		}
	}

	return last, &CodeParameterComputationError{
		RequiredErrorRate: requiredRate,
		Err:               ErrNoCodeParameter,
	}
}

func (e *PhysicalResourceEstimation[Q, P, F]) computeFactoryParts(
	patch *LogicalPatch[Q, P],
	numCycles uint64,
	maxCycles uint64,
	budget *ErrorBudget,
) ([]*FactoryPart[P, F], uint64, error) {
	numTypes := e.factoryBuilder.NumMagicStateTypes()
	parts := make([]*FactoryPart[P, F], 0, numTypes)

	for i := 0; i < numTypes; i++ {
		part, requiredCycles, err := e.computeFactoryPart(
			patch, numCycles, maxCycles, budget, i)
		if err != nil {
			return nil, 0, err
		}

		if part != nil {
			numCycles = requiredCycles
		}

		parts = append(parts, part)
	}

	return parts, numCycles, nil
}

// computeFactoryPart returns a nil part if the algorithm needs no magic
// states of the given type.
func (e *PhysicalResourceEstimation[Q, P, F]) computeFactoryPart(
	patch *LogicalPatch[Q, P],
	minCycles uint64,
	maxCycles uint64,
	budget *ErrorBudget,
	magicStateType int,
) (*FactoryPart[P, F], uint64, error) {
	numMagicStates := e.overhead.NumMagicStates(budget, magicStateType)
	if numMagicStates == 0 {
		return nil, minCycles, nil
	}

	requiredRate := budget.MagicStates() /
		float64(e.factoryBuilder.NumMagicStateTypes()) /
		float64(numMagicStates)

	factories, err := e.findFactories(
		magicStateType, requiredRate, patch.CodeParameter())
	if err != nil {
		return nil, 0, err
	}

	if len(factories) == 0 {
		return nil, 0, errNoSuitableFactory
	}

	picked, ok := e.findFactory(
		magicStateType, factories, patch, budget, minCycles, maxCycles)
	if !ok {
		return nil, 0, errNoSuitableFactory
	}

	numFactories := e.numFactories(
		patch, magicStateType, picked.factory, budget, picked.numCycles)

	part := NewFactoryPart[P](
		picked.factory, numFactories, numMagicStates, requiredRate)

	return part, picked.numCycles, nil
}

// findFactory prefers the smallest factory that finishes within minCycles
// and otherwise picks the best one that finishes within maxCycles.
func (e *PhysicalResourceEstimation[Q, P, F]) findFactory(
	magicStateType int,
	factories []F,
	patch *LogicalPatch[Q, P],
	budget *ErrorBudget,
	minCycles uint64,
	maxCycles uint64,
) (factoryForCycles[F], bool) {
	algorithmDuration := minCycles * patch.LogicalCycleTime()

	var (
		best  F
		found bool
	)

	for _, f := range factories {
		if f.Duration() > algorithmDuration {
			continue
		}

		if !e.maxFactoriesSatisfied(patch, f, budget, minCycles) {
			continue
		}

		if !found || f.NormalizedVolume() < best.NormalizedVolume() {
			best, found = f, true
		}
	}

	if found {
		return factoryForCycles[F]{factory: best, numCycles: minCycles}, true
	}

	return e.findFactoryWithinMaxCycles(
		magicStateType, factories, patch, budget, maxCycles)
}

func (e *PhysicalResourceEstimation[Q, P, F]) findFactoryWithinMaxCycles(
	magicStateType int,
	factories []F,
	patch *LogicalPatch[Q, P],
	budget *ErrorBudget,
	maxCycles uint64,
) (factoryForCycles[F], bool) {
	if e.maxFactories == nil {
		return minFactoryForCycles[P](
			pickFactoriesWithNumCycles(factories, patch, maxCycles))
	}

	numMagicStates := e.overhead.NumMagicStates(budget, magicStateType)

	var candidates []factoryForCycles[F]
	for _, f := range factories {
		perRun := *e.maxFactories * f.NumOutputStates()
		runs := divCeil(numMagicStates, perRun)
		n := divCeil(runs*f.Duration(), patch.LogicalCycleTime())

		if n <= maxCycles {
			candidates = append(candidates,
				factoryForCycles[F]{factory: f, numCycles: n})
		}
	}

	return minFactoryForCycles[P](candidates)
}

func (e *PhysicalResourceEstimation[Q, P, F]) maxFactoriesSatisfied(
	patch *LogicalPatch[Q, P],
	factory F,
	budget *ErrorBudget,
	numCycles uint64,
) bool {
	if e.maxFactories == nil {
		return true
	}

	return *e.maxFactories >= e.numFactories(patch, 0, factory, budget, numCycles)
}
