package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/meenmo/optlib/analytics"
	"github.com/meenmo/optlib/calendar"
	"github.com/meenmo/optlib/curve"
	"github.com/meenmo/optlib/marketdata"
	"github.com/meenmo/optlib/tree"
)

type contractInput struct {
	TaskID        string    `json:"task_id,omitempty"`
	PricingDate   string    `json:"pricing_date"`
	MaturityDate  string    `json:"maturity_date"`
	Calendar      string    `json:"calendar,omitempty"`
	Spot          float64   `json:"spot"`
	Strike        float64   `json:"strike"`
	Volatility    float64   `json:"volatility"`
	DividendYield float64   `json:"dividend_yield,omitempty"`
	FlatRate      *float64  `json:"flat_rate,omitempty"`
	DFs           []dfPoint `json:"discount_factors,omitempty"`
}

type dfPoint struct {
	Date string  `json:"date"`
	DF   float64 `json:"df"`
}

type contractOutput struct {
	TaskID         string  `json:"task_id,omitempty"`
	PricingDate    string  `json:"pricing_date,omitempty"`
	MaturityDate   string  `json:"maturity_date,omitempty"`
	DaysToMaturity int     `json:"days_to_maturity"`
	UpFactor       float64 `json:"u"`
	DownFactor     float64 `json:"d"`
	Value          float64 `json:"value"`
	EuropeanValue  float64 `json:"european_value"`
	Error          string  `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "JSON input path (reads stdin if omitted)")
	usePG := flag.Bool("pg", false, "Read discount factors from Postgres (DSN in OPTLIB_PG_DSN)")
	pgTable := flag.String("pg-table", "", "Postgres table name (default discount_factors)")
	help := flag.Bool("h", false, "Show help")
	flag.BoolVar(help, "help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: amcall [-pg] -input <path>")
		fmt.Fprintln(os.Stderr, "Price an American call on a business-day binomial lattice.")
		return
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
			fmt.Fprintln(os.Stderr, "Usage: amcall [-pg] -input <path>")
			os.Exit(2)
		}
	}

	raw, err := readInput(path)
	if err != nil {
		exitError(fmt.Sprintf("read input: %v", err))
	}

	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		exitError(fmt.Sprintf("parse JSON: %v", err))
	}

	var feed marketdata.CurveFeed
	if *usePG {
		// .env is optional; a missing file just means the DSN comes from the
		// real environment.
		_ = godotenv.Load()
		dsn := os.Getenv("OPTLIB_PG_DSN")
		if dsn == "" {
			exitError("OPTLIB_PG_DSN is not set")
		}
		pg, err := marketdata.OpenPostgres(dsn, *pgTable)
		if err != nil {
			exitError(err.Error())
		}
		defer pg.Close()
		feed = pg
	}

	hadError := false
	outputs := make([]contractOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := process(in, feed)
		if err != nil {
			hadError = true
			outputs = append(outputs, contractOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		b, _ := json.Marshal(outputs)
		fmt.Println(string(b))
	} else {
		b, _ := json.Marshal(outputs[0])
		fmt.Println(string(b))
	}

	if hadError {
		os.Exit(1)
	}
}

func process(in contractInput, feed marketdata.CurveFeed) (*contractOutput, error) {
	pricing, err := time.Parse("2006-01-02", in.PricingDate)
	if err != nil {
		return nil, fmt.Errorf("invalid pricing_date: %v", err)
	}
	maturity, err := time.Parse("2006-01-02", in.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("invalid maturity_date: %v", err)
	}
	cal, err := parseCalendar(in.Calendar)
	if err != nil {
		return nil, err
	}
	// Listed-contract maturities roll per Modified Following when quoted on a
	// non-business day.
	maturity = calendar.Adjust(cal, maturity)

	ts, err := buildCurve(in, feed, pricing, cal)
	if err != nil {
		return nil, err
	}

	t, err := tree.BuildAmericanCallTree(tree.Contract{
		Curve:         ts,
		Calendar:      cal,
		DividendYield: in.DividendYield,
		Spot:          in.Spot,
		Strike:        in.Strike,
		Volatility:    in.Volatility,
		PricingDate:   pricing,
		MaturityDate:  maturity,
	})
	if err != nil {
		return nil, err
	}

	return &contractOutput{
		TaskID:         in.TaskID,
		PricingDate:    in.PricingDate,
		MaturityDate:   maturity.Format("2006-01-02"),
		DaysToMaturity: t.DaysToMaturity(),
		UpFactor:       t.UpFactor(),
		DownFactor:     t.DownFactor(),
		Value:          t.Value(),
		EuropeanValue:  europeanReference(t, ts),
	}, nil
}

// europeanReference prices the same contract as a European Black-Scholes call,
// using the curve-implied zero rate to maturity. A sanity anchor for the
// lattice value, which should never fall below it by more than tree noise.
func europeanReference(t *tree.Tree, ts tree.TermStructure) float64 {
	c := t.Contract()
	horizon := float64(t.DaysToMaturity()) * tree.StepYearFraction
	if horizon == 0 {
		return math.Max(c.Spot-c.Strike, 0)
	}
	r := -math.Log(ts.DF(c.MaturityDate)) / horizon
	return analytics.EuropeanCall(c.Spot, c.Strike, horizon, r, c.DividendYield, c.Volatility)
}

func buildCurve(in contractInput, feed marketdata.CurveFeed, pricing time.Time, cal calendar.CalendarID) (tree.TermStructure, error) {
	if feed != nil {
		dfs, err := feed.DiscountFactors(pricing)
		if err != nil {
			return nil, err
		}
		return curve.NewCurveFromDFs(pricing, dfs, cal, curve.Business252)
	}
	if len(in.DFs) > 0 {
		dfs := make(map[time.Time]float64, len(in.DFs))
		for _, p := range in.DFs {
			d, err := time.Parse("2006-01-02", p.Date)
			if err != nil {
				return nil, fmt.Errorf("invalid discount factor date %s: %v", p.Date, err)
			}
			dfs[d] = p.DF
		}
		return curve.NewCurveFromDFs(pricing, dfs, cal, curve.Business252)
	}
	if in.FlatRate != nil {
		return curve.Flat(pricing, *in.FlatRate, cal, curve.Business252), nil
	}
	return nil, fmt.Errorf("either discount_factors or flat_rate is required")
}

func parseCalendar(name string) (calendar.CalendarID, error) {
	switch calendar.CalendarID(strings.ToUpper(strings.TrimSpace(name))) {
	case "":
		return calendar.USD, nil
	case calendar.USD:
		return calendar.USD, nil
	case calendar.KRW:
		return calendar.KRW, nil
	case calendar.TARGET:
		return calendar.TARGET, nil
	case calendar.JPN:
		return calendar.JPN, nil
	default:
		return "", fmt.Errorf("unknown calendar %q", name)
	}
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

func parseInputs(raw []byte) ([]contractInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []contractInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input contractInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []contractInput{input}, false, nil
}

func exitError(msg string) {
	b, _ := json.Marshal(contractOutput{Error: msg})
	fmt.Println(string(b))
	os.Exit(1)
}
