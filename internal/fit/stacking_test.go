package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPenalize_EmptyAndSingle(t *testing.T) {
	assert.Equal(t, 1.0, Penalize(nil))
	assert.Equal(t, 1.5, Penalize([]float64{1.5}))
}

func TestPenalize_RankedFalloff(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected float64
	}{
		{"1st factor full weight", 0, 1.000},
		{"2nd factor ~87%", 1, 0.869},
		{"3rd factor ~57%", 2, 0.571},
		{"4th factor ~28%", 3, 0.283},
		{"5th factor ~11%", 4, 0.106},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weight := math.Pow(stackingP, float64(tt.n*tt.n))
			assert.InDelta(t, tt.expected, weight, 0.005)
		})
	}
}

func TestPenalize_TwoShieldExtenders(t *testing.T) {
	// scenario 1: base 1000, two post_percent=+50% modifiers.
	result := 1000.0 * Penalize([]float64{1.5, 1.5})
	assert.InDelta(t, 2151.79, result, 0.1)
}

func TestPenalize_SignedChainsIndependent(t *testing.T) {
	gain := Penalize([]float64{1.5})
	loss := Penalize([]float64{0.8})
	mixed := Penalize([]float64{1.5, 0.8})
	assert.InDelta(t, gain*loss, mixed, 1e-9)
}

func TestPenalize_PermutationInvariant(t *testing.T) {
	a := Penalize([]float64{1.5, 1.3, 0.7, 1.1})
	b := Penalize([]float64{1.1, 0.7, 1.5, 1.3})
	assert.InDelta(t, a, b, 1e-9)
}

func TestPenalize_TwelfthFactorNegligible(t *testing.T) {
	eleven := make([]float64, 11)
	twelve := make([]float64, 12)
	for i := range eleven {
		eleven[i] = 1.1
	}
	copy(twelve, eleven)
	twelve[11] = 1.1

	a := Penalize(eleven)
	b := Penalize(twelve)
	assert.InDelta(t, a, b, 1e-12)
}
