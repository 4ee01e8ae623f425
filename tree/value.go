package tree

import "math"

// americanCallValues builds the backward pass: option values for every node
// of a fully populated price lattice.
//
// Terminal nodes carry intrinsic value max(price - strike, 0). Interior
// node (t, r) discounts the expectation of its two children under the
// step's forward rate and up probability,
//
//	cont = exp(-rates[t]*dt) * (q*V[t+1][r] + (1-q)*V[t+1][r+1])
//
// and applies the early-exercise floor max(cont, price - strike). The
// continuation value is never negative, so the floor also covers the
// max(price - strike, 0) intrinsic form. values[0][0] is the option's
// present value.
func americanCallValues(prices [][]float64, strike float64, rates, probs []float64, dt float64) [][]float64 {
	n := len(prices) - 1
	values := make([][]float64, n+1)

	terminal := make([]float64, n+1)
	for r, p := range prices[n] {
		terminal[r] = math.Max(p-strike, 0)
	}
	values[n] = terminal

	for t := n - 1; t >= 0; t-- {
		disc := math.Exp(-rates[t] * dt)
		q := probs[t]
		row := make([]float64, t+1)
		for r := 0; r <= t; r++ {
			cont := disc * (q*values[t+1][r] + (1-q)*values[t+1][r+1])
			row[r] = math.Max(cont, prices[t][r]-strike)
		}
		values[t] = row
	}
	return values
}
