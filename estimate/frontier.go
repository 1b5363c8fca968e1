package estimate

import "github.com/sarchlab/qre/pareto"

// BuildFrontier returns the results that are Pareto optimal in the number
// of physical qubits and the runtime, ordered by increasing number of
// physical qubits.
func (e *PhysicalResourceEstimation[Q, P, F]) BuildFrontier(
	budget *ErrorBudget,
) ([]*Result[Q, P, F], error) {
	if e.factoryBuilder.NumMagicStateTypes() != 1 {
		return nil, ErrMultipleMagicStatesNotSupported
	}

	start, err := e.computeInitialValues(budget)
	if err != nil {
		return nil, err
	}

	numMagicStates := e.overhead.NumMagicStates(budget, 0)
	if numMagicStates == 0 {
		patch, err := NewLogicalPatch(e.code, start.minCodeParameter, e.qubit)
		if err != nil {
			return nil, err
		}

		return []*Result[Q, P, F]{e.newResultWithoutFactories(
			patch, budget, start.numCycles, start.requiredLogicalErrorRate)}, nil
	}

	population := pareto.NewPopulation[*Result[Q, P, F]]()

	var (
		lastFactories []F
		lastParam     *P
	)

	params := e.code.CodeParameterRange(&start.minCodeParameter)
	for i := len(params) - 1; i >= 0; i-- {
		param := params[i]

		patch, err := NewLogicalPatch(e.code, param, e.qubit)
		if err != nil {
			return nil, err
		}

		maxCycles, err := e.logicalCyclesForCodeParameter(budget.Logical(), param)
		if err != nil {
			return nil, err
		}

		if maxCycles < start.numCycles {
			continue
		}

		if e.needsNewFactories(lastParam, param) {
			lastFactories, err = e.findFactories(
				0, start.requiredMagicStateRate, param)
			if err != nil {
				return nil, err
			}

			lastParam = e.findHighestCodeParameter(lastFactories)

			e.log.V(1).Info("found factories",
				"codeParameter", param,
				"numFactories", len(lastFactories))
		}

		for _, picked := range pickFactoriesWithNumCycles(
			lastFactories, patch, maxCycles) {
			e.pushFrontierPoints(population, patch, budget, start,
				numMagicStates, picked.factory, maxCycles)
		}
	}

	if population.Len() == 0 {
		return nil, &CannotComputeMagicStatesError{
			RequiredErrorRate: start.requiredMagicStateRate,
		}
	}

	population.FilterOutDominated()

	return population.ExtractItems(), nil
}

// pushFrontierPoints adds one point per number of factory copies, starting
// from the fewest copies that fit into maxCycles, until more copies no
// longer shorten the runtime.
func (e *PhysicalResourceEstimation[Q, P, F]) pushFrontierPoints(
	population *pareto.Population[*Result[Q, P, F]],
	patch *LogicalPatch[Q, P],
	budget *ErrorBudget,
	start *initialValues[P],
	numMagicStates uint64,
	factory F,
	maxCycles uint64,
) {
	numFactories := e.numFactories(patch, 0, factory, budget, maxCycles)

	for {
		magicCycles := e.numCyclesForMagicStates(
			0, numFactories, factory, patch, budget)
		numCycles := max(magicCycles, start.numCycles)

		part := NewFactoryPart[P](factory, numFactories, numMagicStates,
			start.requiredMagicStateRate)
		result := e.newResult(patch, budget, numCycles,
			[]*FactoryPart[P, F]{part}, start.requiredLogicalErrorRate)

		population.PushItem(result,
			float64(result.PhysicalQubits()), float64(result.Runtime()))
		population.AttemptFilterOutDominated()

		if magicCycles <= start.numCycles || part.NumRuns() <= 1 {
			return
		}

		numFactories++
	}
}
