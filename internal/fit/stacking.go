package fit

import "math"

// stackingP is the base of the stacking-penalty falloff curve:
// P = 1 / e^((1/2.67)^2) ≈ 0.8691. Rank k (0-indexed) is weighted P^(k^2).
var stackingP = math.Exp(-1.0 / (2.67 * 2.67))

// stackingChainLimit is the number of ranked positions that carry weight;
// later ranks are dropped (rank 11 would weigh P^121 ≈ 4e-8).
const stackingChainLimit = 11

// Penalize aggregates a list of multiplicative factors (e.g. 1.5 for a
// +50% bonus) under EVE's diminishing-returns stacking discipline: the
// strongest factor in each sign applies at full strength, the next at
// P^1, the next at P^4, and so on. Positive and negative deltas are ranked
// in separate chains so that a loss doesn't eat a gain's penalty rank.
//
// Penalize(nil) == 1.0, and Penalize([f]) == f for any single factor.
func Penalize(factors []float64) float64 {
	if len(factors) == 0 {
		return 1.0
	}

	var positives, negatives []float64
	for _, f := range factors {
		delta := f - 1
		if delta >= 0 {
			positives = append(positives, delta)
		} else {
			negatives = append(negatives, delta)
		}
	}

	sortDescendingByMagnitude(positives)
	sortDescendingByMagnitude(negatives)

	return chain(positives) * chain(negatives)
}

// chain folds one sign's ranked deltas into a single multiplier.
func chain(deltas []float64) float64 {
	r := 1.0
	for i, delta := range deltas {
		if i >= stackingChainLimit {
			break
		}
		weight := math.Pow(stackingP, float64(i*i))
		r *= 1 + delta*weight
	}
	return r
}

// sortDescendingByMagnitude orders deltas by |delta| descending, in place,
// via straight insertion sort: chains are short (a handful of modules per
// attribute), so this stays simple and allocation-free rather than reaching
// for sort.Slice.
func sortDescendingByMagnitude(deltas []float64) {
	for i := 1; i < len(deltas); i++ {
		v := deltas[i]
		j := i - 1
		for j >= 0 && math.Abs(deltas[j]) < math.Abs(v) {
			deltas[j+1] = deltas[j]
			j--
		}
		deltas[j+1] = v
	}
}
