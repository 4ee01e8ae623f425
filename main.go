package main

import (
	"fmt"

	"github.com/meenmo/optlib/calendar"
	"github.com/meenmo/optlib/curve"
	"github.com/meenmo/optlib/tree"
	"github.com/meenmo/optlib/utils"
)

func main() {
	pricing := utils.DateParser("2025-06-02")
	maturity := utils.DateParser("2025-09-01")

	crv := curve.Flat(pricing, 0.035, calendar.USD, curve.Business252)

	t, err := tree.BuildAmericanCallTree(tree.Contract{
		Curve:         crv,
		Calendar:      calendar.USD,
		DividendYield: 0.012,
		Spot:          17.3,
		Strike:        18.0,
		Volatility:    0.3,
		PricingDate:   pricing,
		MaturityDate:  maturity,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("Days to maturity: %d\n", t.DaysToMaturity())
	fmt.Printf("u: %.10f d: %.10f\n", t.UpFactor(), t.DownFactor())
	fmt.Printf("American call value: %.6f\n", t.Value())
}
