package tfactory

import "slices"

// searchCodeDistances raises the distance index of all rounds together,
// keeping the indexes non-decreasing and within bounds, until check
// returns false. It returns the indexes where check did so, or false if it
// never does, in which case no mixture of distances can do better.
func searchCodeDistances(
	left, right []int,
	check func(distanceIndexes []int) bool,
) ([]int, bool) {
	indexes := make([]int, len(left))
	var previous []int

	for i := slices.Min(left); i <= slices.Max(right); i++ {
		if !uniformIndexes(indexes, left, right, i) {
			continue
		}

		if slices.Equal(indexes, previous) {
			continue
		}
		previous = slices.Clone(indexes)

		if !check(indexes) {
			return slices.Clone(indexes), true
		}
	}

	return nil, false
}

func uniformIndexes(indexes, left, right []int, i int) bool {
	for k := range indexes {
		v := max(left[k], min(i, right[k]))
		if k > 0 {
			v = max(v, indexes[k-1])
		}

		if v > right[k] {
			return false
		}

		indexes[k] = v
	}

	return true
}

// iterateCodeDistances continues from the indexes where the search stopped
// and visits the following non-decreasing distance index sequences within
// bounds. For a fixed prefix, the last round's index grows until check
// returns false.
func iterateCodeDistances(
	left, right, start []int,
	check func(distanceIndexes []int) bool,
) {
	n := len(start)
	if n == 0 {
		return
	}

	indexes := slices.Clone(start)

	for {
		for ; indexes[n-1] <= right[n-1]; indexes[n-1]++ {
			if !check(indexes) {
				break
			}
		}

		if !nextPrefix(indexes, left, right) {
			return
		}
	}
}

// nextPrefix advances all but the last index like an odometer and resets
// the following ones to their lowest allowed value. It returns false when
// all prefixes are used up.
func nextPrefix(indexes, left, right []int) bool {
	n := len(indexes)

	for p := n - 2; p >= 0; p-- {
		if indexes[p] >= right[p] {
			continue
		}

		indexes[p]++

		valid := true
		for k := p + 1; k < n; k++ {
			indexes[k] = max(left[k], indexes[k-1])
			if indexes[k] > right[k] {
				valid = false
			}
		}

		if valid {
			return true
		}

		return nextPrefix(indexes, left, right)
	}

	return false
}
