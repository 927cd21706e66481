package analysis

import (
	"math"
	"testing"
)

func TestPercentileLinearInterpolation(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"single value", []float64{5}, 70, 5},
		{"two values interpolated", []float64{10, 20}, 70, 17},
		{"70th of four", []float64{1, 2, 3, 4}, 70, 3.1},
		{"30th of four", []float64{1, 2, 3, 4}, 30, 1.9},
		{"exact rank", []float64{1, 2, 3}, 50, 2},
		{"minimum", []float64{3, 1, 2}, 0, 1},
		{"maximum", []float64{3, 1, 2}, 100, 3},
		{"unsorted input", []float64{4, 1, 3, 2}, 70, 3.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentile(tt.values, tt.p)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("percentile(%v, %g) = %g, want %g", tt.values, tt.p, got, tt.want)
			}
		})
	}
}

func TestPercentileDoesNotMutate(t *testing.T) {
	values := []float64{4, 1, 3, 2}
	percentile(values, 50)
	want := []float64{4, 1, 3, 2}
	for i := range values {
		if values[i] != want[i] {
			t.Fatalf("input reordered: %v", values)
		}
	}
}

func TestVarianceIsPopulationVariance(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"constant", []float64{7, 7, 7}, 0},
		{"simple", []float64{1, 2, 3, 4}, 1.25},
		{"pair", []float64{0, 10}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := variance(tt.values); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("variance(%v) = %g, want %g", tt.values, got, tt.want)
			}
		})
	}
}

func TestMean(t *testing.T) {
	if got := mean([]float64{1, 2, 3}); got != 2 {
		t.Errorf("mean = %g, want 2", got)
	}
	if got := mean(nil); got != 0 {
		t.Errorf("mean(nil) = %g, want 0", got)
	}
}
