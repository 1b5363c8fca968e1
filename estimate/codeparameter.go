package estimate

// ComputeCodeParameter returns the cheapest code parameter whose error
// rate per logical qubit is at most requiredRate. Parameters that the code
// cannot evaluate are skipped.
func ComputeCodeParameter[Q, P any](
	code ErrorCorrection[Q, P],
	qubit Q,
	requiredRate float64,
) (P, error) {
	for _, param := range code.CodeParameterRange(nil) {
		if meetsRate(code, qubit, param, requiredRate) {
			return param, nil
		}
	}

	var zero P
	return zero, ErrNoCodeParameter
}

// ComputeCodeParameterForSmallestSize is like ComputeCodeParameter but
// returns the qualifying parameter with the fewest physical qubits per
// logical qubit. On ties the first one wins.
func ComputeCodeParameterForSmallestSize[Q, P any](
	code ErrorCorrection[Q, P],
	qubit Q,
	requiredRate float64,
) (P, error) {
	return computeCodeParameterMinimizing(code, qubit, requiredRate,
		func(param P) (float64, bool) {
			physical, err := code.PhysicalQubits(param)
			if err != nil {
				return 0, false
			}

			logical, err := code.LogicalQubits(param)
			if err != nil || logical == 0 {
				return 0, false
			}

			return float64(physical) / float64(logical), true
		})
}

// ComputeCodeParameterForSmallestRuntime is like ComputeCodeParameter but
// returns the qualifying parameter with the shortest logical cycle time.
// On ties the first one wins.
func ComputeCodeParameterForSmallestRuntime[Q, P any](
	code ErrorCorrection[Q, P],
	qubit Q,
	requiredRate float64,
) (P, error) {
	return computeCodeParameterMinimizing(code, qubit, requiredRate,
		func(param P) (float64, bool) {
			cycleTime, err := code.LogicalCycleTime(qubit, param)
			if err != nil {
				return 0, false
			}

			return float64(cycleTime), true
		})
}

func computeCodeParameterMinimizing[Q, P any](
	code ErrorCorrection[Q, P],
	qubit Q,
	requiredRate float64,
	cost func(P) (float64, bool),
) (P, error) {
	var (
		best     P
		bestCost float64
		found    bool
	)

	for _, param := range code.CodeParameterRange(nil) {
		if !meetsRate(code, qubit, param, requiredRate) {
			continue
		}

		c, ok := cost(param)
		if !ok {
			continue
		}

		if !found || c < bestCost {
			best, bestCost, found = param, c, true
		}
	}

	if !found {
		return best, ErrNoCodeParameter
	}

	return best, nil
}

func meetsRate[Q, P any](
	code ErrorCorrection[Q, P],
	qubit Q,
	param P,
	requiredRate float64,
) bool {
	rate, err := code.LogicalErrorRate(qubit, param)
	if err != nil {
		return false
	}

	logical, err := code.LogicalQubits(param)
	if err != nil || logical == 0 {
		return false
	}

	return rate/float64(logical) <= requiredRate
}
