// Package analytics provides closed-form European option values used as
// reference points for the lattice pricer.
package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// EuropeanCall returns the Black-Scholes value of a European call on an
// underlying paying a continuous dividend yield q.
//
// t is the time to expiry in years, r the continuously compounded risk-free
// rate (decimal), sigma the annualized volatility. With t or sigma at zero
// the value degenerates to discounted intrinsic.
func EuropeanCall(spot, strike, t, r, q, sigma float64) float64 {
	if t <= 0 || sigma <= 0 {
		return math.Max(spot*math.Exp(-q*t)-strike*math.Exp(-r*t), 0)
	}
	d1, d2 := dValues(spot, strike, t, r, q, sigma)
	return spot*math.Exp(-q*t)*normCDF(d1) - strike*math.Exp(-r*t)*normCDF(d2)
}

// CallDelta returns the Black-Scholes delta of a European call.
func CallDelta(spot, strike, t, r, q, sigma float64) float64 {
	if t <= 0 || sigma <= 0 {
		if spot > strike {
			return math.Exp(-q * t)
		}
		return 0
	}
	d1, _ := dValues(spot, strike, t, r, q, sigma)
	return math.Exp(-q*t) * normCDF(d1)
}

func dValues(spot, strike, t, r, q, sigma float64) (d1, d2 float64) {
	sqrtT := math.Sqrt(t)
	d1 = (math.Log(spot/strike) + (r-q+0.5*sigma*sigma)*t) / (sigma * sqrtT)
	d2 = d1 - sigma*sqrtT
	return d1, d2
}

func normCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}
