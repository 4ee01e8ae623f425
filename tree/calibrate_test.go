package tree_test

import (
	"errors"
	"math"
	"testing"

	"github.com/meenmo/optlib/tree"
)

func TestVolatilityMatch_ReferenceValues(t *testing.T) {
	t.Parallel()

	// sigma = 0.3 with a whole-unit step, the classic textbook pair.
	u, d, err := tree.VolatilityMatch(0.3, 1.0)
	if err != nil {
		t.Fatalf("VolatilityMatch error: %v", err)
	}
	if math.Abs(u-1.3498588075760032) > 1e-12 {
		t.Fatalf("u mismatch: got %.16f", u)
	}
	if math.Abs(d-0.7408182206817179) > 1e-12 {
		t.Fatalf("d mismatch: got %.16f", d)
	}
}

func TestVolatilityMatch_Recombining(t *testing.T) {
	t.Parallel()

	for _, sigma := range []float64{0.05, 0.3, 0.42, 1.2} {
		u, d, err := tree.VolatilityMatch(sigma, tree.StepYearFraction)
		if err != nil {
			t.Fatalf("VolatilityMatch(%v) error: %v", sigma, err)
		}
		if !(u > 1 && 1 > d && d > 0) {
			t.Fatalf("ordering violated for sigma=%v: u=%v d=%v", sigma, u, d)
		}
		if math.Abs(u*d-1) > 1e-15 {
			t.Fatalf("u*d != 1 for sigma=%v: got %v", sigma, u*d)
		}
	}
}

func TestVolatilityMatch_InvalidInputs(t *testing.T) {
	t.Parallel()

	if _, _, err := tree.VolatilityMatch(-0.1, 1.0); !errors.Is(err, tree.ErrInvalidParameter) {
		t.Fatalf("negative volatility: got %v", err)
	}
	if _, _, err := tree.VolatilityMatch(0.3, 0); !errors.Is(err, tree.ErrInvalidParameter) {
		t.Fatalf("zero step: got %v", err)
	}
	if _, _, err := tree.VolatilityMatch(0.3, -1.0/252.0); !errors.Is(err, tree.ErrInvalidParameter) {
		t.Fatalf("negative step: got %v", err)
	}
}

func TestRiskNeutralProbabilities_Formula(t *testing.T) {
	t.Parallel()

	dt := tree.StepYearFraction
	u, d, err := tree.VolatilityMatch(0.3, dt)
	if err != nil {
		t.Fatalf("VolatilityMatch error: %v", err)
	}

	rates := []float64{0.01, 0.03, 0.05, -0.02}
	probs, err := tree.RiskNeutralProbabilities(rates, u, d, dt)
	if err != nil {
		t.Fatalf("RiskNeutralProbabilities error: %v", err)
	}
	if len(probs) != len(rates) {
		t.Fatalf("length mismatch: got %d want %d", len(probs), len(rates))
	}
	for i, r := range rates {
		want := (math.Exp(r*dt) - d) / (u - d)
		if math.Abs(probs[i]-want) > 1e-15 {
			t.Fatalf("prob[%d] mismatch: got %v want %v", i, probs[i], want)
		}
		if probs[i] < 0 || probs[i] > 1 {
			t.Fatalf("prob[%d] outside [0,1]: %v", i, probs[i])
		}
	}
}

func TestRiskNeutralProbabilities_Inconsistent(t *testing.T) {
	t.Parallel()

	dt := tree.StepYearFraction
	u, d, err := tree.VolatilityMatch(0.3, dt)
	if err != nil {
		t.Fatalf("VolatilityMatch error: %v", err)
	}

	// A 500% forward rate pushes the drift past the up factor.
	if _, err := tree.RiskNeutralProbabilities([]float64{5.0}, u, d, dt); !errors.Is(err, tree.ErrNumericalInconsistency) {
		t.Fatalf("extreme rate: got %v", err)
	}

	// Zero volatility collapses u and d; the probability is undefined and
	// must surface, not be clamped.
	if _, err := tree.RiskNeutralProbabilities([]float64{0.03}, 1, 1, dt); !errors.Is(err, tree.ErrNumericalInconsistency) {
		t.Fatalf("degenerate factors: got %v", err)
	}
}
