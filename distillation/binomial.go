package distillation

import "gonum.org/v1/gonum/stat/distuv"

// successQuantile returns the smallest k such that at least k out of n
// independent trials succeed with a probability of at most p, where each
// trial fails with probability q. This is the p-quantile of the number of
// successes.
func successQuantile(n uint64, q, p float64) uint64 {
	dist := distuv.Binomial{N: float64(n), P: 1 - q}

	lower, upper := uint64(0), n
	for lower < upper {
		mid := lower + (upper-lower)/2
		if dist.CDF(float64(mid)) >= p {
			upper = mid
		} else {
			lower = mid + 1
		}
	}

	return lower
}
