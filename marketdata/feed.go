// Package marketdata supplies curve inputs (discount factor pillars) to the
// pricing tools.
package marketdata

import (
	"fmt"
	"time"
)

// CurveFeed supplies discount factor pillars for a curve as of a curve date.
type CurveFeed interface {
	// DiscountFactors returns the pillar date -> discount factor map for the
	// given curve date. The keys include every pillar on or after curveDate.
	DiscountFactors(curveDate time.Time) (map[time.Time]float64, error)
}

// MapCurveFeed is a static map-backed implementation for development/testing.
type MapCurveFeed struct {
	pillars map[string]map[time.Time]float64
}

// NewMapCurveFeed builds a feed keyed by curve date in YYYY-MM-DD form.
func NewMapCurveFeed(pillars map[string]map[time.Time]float64) *MapCurveFeed {
	return &MapCurveFeed{pillars: pillars}
}

func (m *MapCurveFeed) DiscountFactors(curveDate time.Time) (map[time.Time]float64, error) {
	dfs, ok := m.pillars[curveDate.Format("2006-01-02")]
	if !ok {
		return nil, fmt.Errorf("MapCurveFeed: no curve for %s", curveDate.Format("2006-01-02"))
	}
	out := make(map[time.Time]float64, len(dfs))
	for t, df := range dfs {
		out[t] = df
	}
	return out, nil
}
