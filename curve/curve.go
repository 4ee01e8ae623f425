package curve

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/optlib/calendar"
	"github.com/meenmo/optlib/utils"
)

// DayCount identifies the convention used for the curve's time axis.
type DayCount string

const (
	// Business252 counts only business days, with 252 treated as one year.
	// Tree pricing requires curves on this basis.
	Business252 DayCount = "BUS/252"
	// Act365F is actual days over a fixed 365-day year.
	Act365F DayCount = "ACT/365F"
	// Act360 is actual days over a 360-day year.
	Act360 DayCount = "ACT/360"
	// Thirty360 is 30E/360 (Eurobond basis).
	Thirty360 DayCount = "30E/360"
)

// Business252YearFraction returns the BUS/252 year fraction between two
// dates: business days in (start, end] over 252.
func Business252YearFraction(cal calendar.CalendarID, start, end time.Time) float64 {
	return float64(calendar.BusinessDayCount(cal, start, end)) / 252.0
}

// ZeroCurve is a discount curve defined by explicit discount factor pillars.
//
// Discount factors between pillars are log-linearly interpolated in curve
// time; queries beyond the last pillar use flat-forward extrapolation from
// the final pillar pair. The curve is immutable after construction.
type ZeroCurve struct {
	reference   time.Time
	cal         calendar.CalendarID
	dayCount    DayCount
	pillarDates []time.Time
	dfs         map[time.Time]float64
}

// NewCurveFromDFs creates a curve from explicitly provided discount factors.
//
// A pillar at the reference date with DF = 1.0 is inserted when absent, so
// DF(reference) is exactly 1.0 for every curve built here.
func NewCurveFromDFs(reference time.Time, dfs map[time.Time]float64, cal calendar.CalendarID, dc DayCount) (*ZeroCurve, error) {
	if reference.IsZero() {
		return nil, fmt.Errorf("NewCurveFromDFs: reference date is required")
	}
	if len(dfs) == 0 {
		return nil, fmt.Errorf("NewCurveFromDFs: at least one discount factor is required")
	}

	c := &ZeroCurve{
		reference: reference,
		cal:       cal,
		dayCount:  dc,
		dfs:       make(map[time.Time]float64, len(dfs)+1),
	}
	for t, df := range dfs {
		if df <= 0 {
			return nil, fmt.Errorf("NewCurveFromDFs: non-positive discount factor %v at %s", df, t.Format("2006-01-02"))
		}
		if t.Before(reference) {
			return nil, fmt.Errorf("NewCurveFromDFs: pillar %s precedes reference date %s",
				t.Format("2006-01-02"), reference.Format("2006-01-02"))
		}
		if t.Equal(reference) && df != 1.0 {
			return nil, fmt.Errorf("NewCurveFromDFs: reference date pillar must have DF 1.0, got %v", df)
		}
		c.dfs[t] = df
		c.pillarDates = append(c.pillarDates, t)
	}

	if _, ok := c.dfs[reference]; !ok {
		c.dfs[reference] = 1.0
		c.pillarDates = append(c.pillarDates, reference)
	}
	utils.SortDates(c.pillarDates)

	return c, nil
}

// DF returns the discount factor at t.
//
// Exact pillar dates return the stored value; anything else is log-linearly
// interpolated (or flat-forward extrapolated at the boundaries).
func (c *ZeroCurve) DF(t time.Time) float64 {
	if df, ok := c.dfs[t]; ok {
		return df
	}
	if len(c.pillarDates) < 2 {
		return 1.0
	}

	d1, d2 := findBracketOrBoundary(c.pillarDates, t)
	df1 := c.dfs[d1]
	df2 := c.dfs[d2]

	t1 := c.yearFraction(d1)
	t2 := c.yearFraction(d2)
	tTarget := c.yearFraction(t)

	if t2 == t1 {
		return df1
	}
	forwardRate := math.Log(df1/df2) / (t2 - t1)
	return utils.RoundTo(df1*math.Exp(-forwardRate*(tTarget-t1)), 12)
}

// ZeroRateAt returns the continuously compounded zero rate at t, in percent.
func (c *ZeroCurve) ZeroRateAt(t time.Time) float64 {
	yearFrac := c.yearFraction(t)
	if yearFrac == 0 {
		return 0
	}
	return utils.RoundTo(-math.Log(c.DF(t))/yearFrac*100, 12)
}

// ReferenceDate returns the curve's anchor date.
func (c *ZeroCurve) ReferenceDate() time.Time {
	return c.reference
}

// DayCount returns the curve's day count convention.
func (c *ZeroCurve) DayCount() DayCount {
	return c.dayCount
}

// Calendar returns the holiday calendar backing business-day conventions.
func (c *ZeroCurve) Calendar() calendar.CalendarID {
	return c.cal
}

// PillarDates returns the sorted pillar dates.
func (c *ZeroCurve) PillarDates() []time.Time {
	out := make([]time.Time, len(c.pillarDates))
	copy(out, c.pillarDates)
	return out
}

// PillarDFs returns the discount factors keyed by pillar date.
// For diagnostic purposes only.
func (c *ZeroCurve) PillarDFs() map[time.Time]float64 {
	result := make(map[time.Time]float64, len(c.dfs))
	for k, v := range c.dfs {
		result[k] = v
	}
	return result
}

func (c *ZeroCurve) yearFraction(t time.Time) float64 {
	return yearFraction(c.reference, t, c.cal, c.dayCount)
}

// FlatCurve is a constant continuously compounded rate curve.
//
// Primarily for tests and tooling where a whole term structure is overkill.
type FlatCurve struct {
	reference time.Time
	rate      float64
	cal       calendar.CalendarID
	dayCount  DayCount
}

// Flat creates a flat curve at the given continuously compounded rate
// (decimal, e.g. 0.03 for 3%).
func Flat(reference time.Time, rate float64, cal calendar.CalendarID, dc DayCount) *FlatCurve {
	return &FlatCurve{reference: reference, rate: rate, cal: cal, dayCount: dc}
}

// DF returns exp(-rate * yearFraction(reference, t)).
func (c *FlatCurve) DF(t time.Time) float64 {
	if t.Equal(c.reference) {
		return 1.0
	}
	return math.Exp(-c.rate * yearFraction(c.reference, t, c.cal, c.dayCount))
}

// ZeroRateAt returns the flat rate in percent.
func (c *FlatCurve) ZeroRateAt(t time.Time) float64 {
	return c.rate * 100
}

// ReferenceDate returns the curve's anchor date.
func (c *FlatCurve) ReferenceDate() time.Time {
	return c.reference
}

// DayCount returns the curve's day count convention.
func (c *FlatCurve) DayCount() DayCount {
	return c.dayCount
}

// Calendar returns the holiday calendar backing business-day conventions.
func (c *FlatCurve) Calendar() calendar.CalendarID {
	return c.cal
}

func yearFraction(start, end time.Time, cal calendar.CalendarID, dc DayCount) float64 {
	if dc == Business252 {
		return Business252YearFraction(cal, start, end)
	}
	return utils.YearFraction(start, end, string(dc))
}
