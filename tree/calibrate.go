package tree

import (
	"fmt"
	"math"
)

// VolatilityMatch converts an annualized volatility and a step year fraction
// into Cox-Ross-Rubinstein up/down factors:
//
//	u = exp(sigma * sqrt(dt)),  d = 1/u
//
// so that u*d = 1 and the lattice recombines. dt is the year fraction of one
// lattice step (1/252 for a one-business-day step), not a whole day.
func VolatilityMatch(sigma, dt float64) (u, d float64, err error) {
	if sigma < 0 {
		return 0, 0, fmt.Errorf("VolatilityMatch: negative volatility %v: %w", sigma, ErrInvalidParameter)
	}
	if dt <= 0 {
		return 0, 0, fmt.Errorf("VolatilityMatch: non-positive step size %v: %w", dt, ErrInvalidParameter)
	}
	u = math.Exp(sigma * math.Sqrt(dt))
	return u, 1 / u, nil
}

// RiskNeutralProbabilities converts per-step forward rates into per-step
// risk-neutral up probabilities:
//
//	q_i = (exp(r_i*dt) - d) / (u - d)
//
// A probability outside [0, 1] signals a calibration mismatch between the
// volatility-implied (u, d) and the curve-implied forward rates; it is
// surfaced as ErrNumericalInconsistency, never clamped.
func RiskNeutralProbabilities(rates []float64, u, d, dt float64) ([]float64, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("RiskNeutralProbabilities: non-positive step size %v: %w", dt, ErrInvalidParameter)
	}

	probs := make([]float64, len(rates))
	for i, r := range rates {
		q := (math.Exp(r*dt) - d) / (u - d)
		if !(q >= 0 && q <= 1) {
			return nil, fmt.Errorf("RiskNeutralProbabilities: probability %v at step %d outside [0,1]: %w",
				q, i+1, ErrNumericalInconsistency)
		}
		probs[i] = q
	}
	return probs, nil
}
