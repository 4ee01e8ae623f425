package tree

import (
	"errors"
	"time"

	"github.com/meenmo/optlib/calendar"
	"github.com/meenmo/optlib/curve"
)

var (
	// ErrInvalidParameter is returned for contract inputs that can never
	// price: negative volatility, non-positive step size, maturity before
	// the pricing date, non-positive spot or strike, or a nil curve.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnsupportedConvention is returned when the curve is not anchored at
	// the pricing date or is not quoted on the BUS/252 day count basis.
	ErrUnsupportedConvention = errors.New("unsupported day count convention")

	// ErrNumericalInconsistency is returned when a risk-neutral probability
	// falls outside [0, 1], i.e. the curve-implied forward rates are too
	// extreme for the volatility-implied up/down factors.
	ErrNumericalInconsistency = errors.New("numerical inconsistency")
)

// StepYearFraction is the year fraction of a single lattice step: one
// business day under the 252-business-day convention. Calibration, forward
// rate extraction, probabilities and discounting all use this same value.
const StepYearFraction = 1.0 / 252.0

// TermStructure provides discount factors and the metadata needed to verify
// that a curve is usable for business-day-aligned lattice pricing.
type TermStructure interface {
	// DF returns the present value of one unit received at t, anchored at
	// the curve's reference date. DF(ReferenceDate()) is 1.0.
	DF(t time.Time) float64
	ReferenceDate() time.Time
	DayCount() curve.DayCount
}

// Contract specifies an American call on a dividend-paying underlying.
//
// The curve must be anchored at PricingDate and quoted on the BUS/252 day
// count; any other configuration is rejected at build time.
type Contract struct {
	Curve         TermStructure
	Calendar      calendar.CalendarID
	DividendYield float64
	Spot          float64
	Strike        float64
	Volatility    float64
	PricingDate   time.Time
	MaturityDate  time.Time
}

// Node is one lattice point. Rank 1 is the topmost (most up-moves) node of
// its step. Nodes are plain records owned by their Tree; they hold no
// reference back to it.
type Node struct {
	Step  int
	Rank  int
	Price float64
	Value float64
}

// Tree is a fully built binomial lattice. It is immutable: every field is
// populated by BuildAmericanCallTree before the tree is returned, and
// accessors returning slices hand out the backing storage, which callers
// must not modify.
type Tree struct {
	contract       Contract
	daysToMaturity int
	u, d           float64
	forwardRates   []float64
	probabilities  []float64
	nodes          [][]Node
}

// Contract returns the contract the tree was built from.
func (t *Tree) Contract() Contract {
	return t.contract
}

// DaysToMaturity returns the number of business days between the pricing
// date and maturity, which is also the number of lattice steps.
func (t *Tree) DaysToMaturity() int {
	return t.daysToMaturity
}

// UpFactor returns the multiplicative up move u.
func (t *Tree) UpFactor() float64 {
	return t.u
}

// DownFactor returns the multiplicative down move d = 1/u.
func (t *Tree) DownFactor() float64 {
	return t.d
}

// ForwardRates returns the per-step annualized forward rates, net of the
// dividend yield. ForwardRates()[i] governs the step from i to i+1.
func (t *Tree) ForwardRates() []float64 {
	return t.forwardRates
}

// Probabilities returns the per-step risk-neutral up probabilities, indexed
// like ForwardRates.
func (t *Tree) Probabilities() []float64 {
	return t.probabilities
}

// Nodes returns the lattice: Nodes()[step][rank-1] is the node at
// (step, rank), step in [0, DaysToMaturity], rank in [1, step+1].
func (t *Tree) Nodes() [][]Node {
	return t.nodes
}

// NodeAt returns the node at (step, rank), rank 1 being the topmost.
func (t *Tree) NodeAt(step, rank int) Node {
	return t.nodes[step][rank-1]
}

// Value returns the option present value: the root node's payoff after
// backward induction.
func (t *Tree) Value() float64 {
	return t.nodes[0][0].Value
}
