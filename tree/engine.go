package tree

import (
	"fmt"

	"github.com/meenmo/optlib/calendar"
)

// BuildAmericanCallTree prices an American call on a business-day-aligned
// binomial lattice and returns the fully built tree.
//
// The pipeline: verify the contract and curve conventions, count business
// days to maturity, calibrate (u, d) from volatility, extract daily forward
// rates from the curve, convert them to risk-neutral probabilities, build
// the price lattice forward, then value it backward with the
// early-exercise floor at every node. Any failure along the way aborts the
// build; a partially built tree is never returned.
func BuildAmericanCallTree(c Contract) (*Tree, error) {
	if c.Curve == nil {
		return nil, fmt.Errorf("BuildAmericanCallTree: nil curve: %w", ErrInvalidParameter)
	}
	if c.Spot <= 0 {
		return nil, fmt.Errorf("BuildAmericanCallTree: non-positive spot %v: %w", c.Spot, ErrInvalidParameter)
	}
	if c.Strike <= 0 {
		return nil, fmt.Errorf("BuildAmericanCallTree: non-positive strike %v: %w", c.Strike, ErrInvalidParameter)
	}
	if c.MaturityDate.Before(c.PricingDate) {
		return nil, fmt.Errorf("BuildAmericanCallTree: maturity %s before pricing date %s: %w",
			c.MaturityDate.Format("2006-01-02"), c.PricingDate.Format("2006-01-02"), ErrInvalidParameter)
	}
	if err := checkConvention(c.Curve, c.PricingDate); err != nil {
		return nil, fmt.Errorf("BuildAmericanCallTree: %w", err)
	}

	days := calendar.BusinessDayCount(c.Calendar, c.PricingDate, c.MaturityDate)

	u, d, err := VolatilityMatch(c.Volatility, StepYearFraction)
	if err != nil {
		return nil, fmt.Errorf("BuildAmericanCallTree: %w", err)
	}

	rates, err := DailyForwardRates(c.Curve, c.Calendar, c.DividendYield, c.PricingDate, c.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("BuildAmericanCallTree: %w", err)
	}
	if len(rates) != days {
		return nil, fmt.Errorf("BuildAmericanCallTree: extracted %d forward rates for %d business days",
			len(rates), days)
	}

	probs, err := RiskNeutralProbabilities(rates, u, d, StepYearFraction)
	if err != nil {
		return nil, fmt.Errorf("BuildAmericanCallTree: %w", err)
	}

	prices := priceLattice(c.Spot, u, d, days)
	values := americanCallValues(prices, c.Strike, rates, probs, StepYearFraction)

	nodes := make([][]Node, days+1)
	for t := 0; t <= days; t++ {
		row := make([]Node, t+1)
		for r := 0; r <= t; r++ {
			row[r] = Node{
				Step:  t,
				Rank:  r + 1,
				Price: prices[t][r],
				Value: values[t][r],
			}
		}
		nodes[t] = row
	}

	return &Tree{
		contract:       c,
		daysToMaturity: days,
		u:              u,
		d:              d,
		forwardRates:   rates,
		probabilities:  probs,
		nodes:          nodes,
	}, nil
}
