package tree

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/optlib/calendar"
	"github.com/meenmo/optlib/curve"
)

// DailyForwardRates extracts one annualized continuously compounded forward
// rate per business day between pricingDate and maturity (inclusive of the
// final day), net of the dividend yield.
//
// Each rate is implied by the discount factor ratio over a single
// business-day step:
//
//	r_i = -ln(DF(d_i)/DF(d_{i-1})) / StepYearFraction - dividendYield
//
// The length of the result defines the lattice depth. The curve must be
// anchored at pricingDate and quoted on the BUS/252 day count.
func DailyForwardRates(ts TermStructure, cal calendar.CalendarID, dividendYield float64, pricingDate, maturity time.Time) ([]float64, error) {
	if ts == nil {
		return nil, fmt.Errorf("DailyForwardRates: nil curve: %w", ErrInvalidParameter)
	}
	if maturity.Before(pricingDate) {
		return nil, fmt.Errorf("DailyForwardRates: maturity %s before pricing date %s: %w",
			maturity.Format("2006-01-02"), pricingDate.Format("2006-01-02"), ErrInvalidParameter)
	}
	if err := checkConvention(ts, pricingDate); err != nil {
		return nil, fmt.Errorf("DailyForwardRates: %w", err)
	}

	var rates []float64
	d0 := pricingDate
	for {
		d1 := calendar.AddBusinessDays(cal, d0, 1)
		if d1.After(maturity) {
			break
		}
		ratio := ts.DF(d1) / ts.DF(d0)
		rate := -math.Log(ratio)/StepYearFraction - dividendYield
		rates = append(rates, rate)
		d0 = d1
	}
	return rates, nil
}

// checkConvention verifies that the curve is anchored at the pricing date
// and quoted on the BUS/252 basis. Any mismatch is a configuration error,
// not something to silently work around.
func checkConvention(ts TermStructure, pricingDate time.Time) error {
	if !ts.ReferenceDate().Equal(pricingDate) {
		return fmt.Errorf("curve reference date %s does not match pricing date %s: %w",
			ts.ReferenceDate().Format("2006-01-02"), pricingDate.Format("2006-01-02"), ErrUnsupportedConvention)
	}
	if ts.DayCount() != curve.Business252 {
		return fmt.Errorf("curve day count %q is not %q: %w", ts.DayCount(), curve.Business252, ErrUnsupportedConvention)
	}
	return nil
}
