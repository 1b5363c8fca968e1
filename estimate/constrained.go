package estimate

// EstimateWithMaxDuration returns the result with the fewest physical
// qubits among those that finish within maxDuration ns.
func (e *PhysicalResourceEstimation[Q, P, F]) EstimateWithMaxDuration(
	budget *ErrorBudget,
	maxDuration uint64,
) (*Result[Q, P, F], error) {
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

		if start.numCycles*patch.LogicalCycleTime() > maxDuration {
			return nil, ErrMaxDurationTooSmall
		}

		return e.newResultWithoutFactories(patch, budget, start.numCycles,
			start.requiredLogicalErrorRate), nil
	}

	var (
		best          *Result[Q, P, F]
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

		maxCyclesByDuration := maxDuration / patch.LogicalCycleTime()
		if maxCyclesByDuration < start.numCycles {
			continue
		}

		maxCyclesByErrorRate, err := e.logicalCyclesForCodeParameter(
			budget.Logical(), param)
		if err != nil {
			return nil, err
		}

		if maxCyclesByErrorRate < start.numCycles {
			continue
		}

		maxCycles := min(maxCyclesByDuration, maxCyclesByErrorRate)

		if e.needsNewFactories(lastParam, param) {
			lastFactories, err = e.findFactories(
				0, start.requiredMagicStateRate, param)
			if err != nil {
				return nil, err
			}

			lastParam = e.findHighestCodeParameter(lastFactories)
		}

		for _, picked := range pickFactoriesWithNumCycles(
			lastFactories, patch, maxCycles) {
			numFactories := e.numFactories(
				patch, 0, picked.factory, budget, maxCycles)

			if e.maxFactories != nil && numFactories > *e.maxFactories {
				continue
			}

			magicCycles := e.numCyclesForMagicStates(
				0, numFactories, picked.factory, patch, budget)
			numCycles := max(magicCycles, start.numCycles)

			result := e.newResult(patch, budget, numCycles,
				[]*FactoryPart[P, F]{NewFactoryPart[P](
					picked.factory, numFactories, numMagicStates,
					start.requiredMagicStateRate)},
				start.requiredLogicalErrorRate)

			if best == nil || result.PhysicalQubits() < best.PhysicalQubits() {
				best = result
			}
		}
	}

	if best == nil {
		return nil, ErrMaxDurationTooSmall
	}

	return best, nil
}

// EstimateWithMaxNumQubits returns the fastest result among those that use
// at most maxQubits physical qubits.
func (e *PhysicalResourceEstimation[Q, P, F]) EstimateWithMaxNumQubits(
	budget *ErrorBudget,
	maxQubits uint64,
) (*Result[Q, P, F], error) {
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

		if e.numAlgorithmicPhysicalQubits(patch) > maxQubits {
			return nil, ErrMaxPhysicalQubitsTooSmall
		}

		return e.newResultWithoutFactories(patch, budget, start.numCycles,
			start.requiredLogicalErrorRate), nil
	}

	var (
		best          *Result[Q, P, F]
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

		algorithmQubits := e.numAlgorithmicPhysicalQubits(patch)
		if maxQubits <= algorithmQubits {
			continue
		}
		allowedQubits := maxQubits - algorithmQubits

		maxCyclesByErrorRate, err := e.logicalCyclesForCodeParameter(
			budget.Logical(), param)
		if err != nil {
			return nil, err
		}

		if maxCyclesByErrorRate < start.numCycles {
			continue
		}

		if e.needsNewFactories(lastParam, param) {
			lastFactories, err = e.findFactories(
				0, start.requiredMagicStateRate, param)
			if err != nil {
				return nil, err
			}

			lastParam = e.findHighestCodeParameter(lastFactories)
		}

		factory, ok := pickFactoryWithinQubits[P](lastFactories, allowedQubits)
		if !ok {
			continue
		}

		numFactories := allowedQubits / factory.PhysicalQubits()
		if numFactories == 0 {
			continue
		}

		magicCycles := e.numCyclesForMagicStates(
			0, numFactories, factory, patch, budget)
		numCycles := max(magicCycles, start.numCycles)

		if numCycles > maxCyclesByErrorRate {
			continue
		}

		if e.maxFactories != nil && numFactories > *e.maxFactories {
			continue
		}

		result := e.newResult(patch, budget, numCycles,
			[]*FactoryPart[P, F]{NewFactoryPart[P](
				factory, numFactories, numMagicStates,
				start.requiredMagicStateRate)},
			start.requiredLogicalErrorRate)

		if best == nil || result.Runtime() < best.Runtime() {
			best = result
		}
	}

	if best == nil {
		return nil, ErrMaxPhysicalQubitsTooSmall
	}

	return best, nil
}

// pickFactoryWithinQubits returns the factory with the smallest normalized
// volume among those with at most maxQubits physical qubits.
func pickFactoryWithinQubits[P any, F Factory[P]](
	factories []F,
	maxQubits uint64,
) (F, bool) {
	var (
		best  F
		found bool
	)

	for _, f := range factories {
		if f.PhysicalQubits() > maxQubits {
			continue
		}

		if !found || f.NormalizedVolume() < best.NormalizedVolume() {
			best, found = f, true
		}
	}

	return best, found
}
