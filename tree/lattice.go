package tree

// priceLattice builds the forward pass: underlying prices for every
// (step, rank) of a recombining lattice with the given depth.
//
// prices[t][r] is the node at step t with r up-to-down rank offset
// (r = 0 is the topmost node, rank 1). The recurrence
//
//	prices[0][0] = spot
//	prices[t][0] = prices[t-1][0] * u
//	prices[t][r] = prices[t-1][r-1] * d   (r > 0)
//
// reproduces spot * u^(t-r) * d^r by construction.
func priceLattice(spot, u, d float64, steps int) [][]float64 {
	prices := make([][]float64, steps+1)
	prices[0] = []float64{spot}
	for t := 1; t <= steps; t++ {
		row := make([]float64, t+1)
		row[0] = prices[t-1][0] * u
		for r := 1; r <= t; r++ {
			row[r] = prices[t-1][r-1] * d
		}
		prices[t] = row
	}
	return prices
}
