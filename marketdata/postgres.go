package marketdata

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // postgres driver
)

// PostgresCurveFeed reads discount factor pillars from a Postgres table.
//
// The expected schema:
//
//	CREATE TABLE discount_factors (
//	    curve_date  date NOT NULL,
//	    pillar_date date NOT NULL,
//	    df          double precision NOT NULL,
//	    PRIMARY KEY (curve_date, pillar_date)
//	);
type PostgresCurveFeed struct {
	db    *sql.DB
	table string
}

// OpenPostgres connects to Postgres with the given DSN. An empty table name
// defaults to "discount_factors".
func OpenPostgres(dsn, table string) (*PostgresCurveFeed, error) {
	if table == "" {
		table = "discount_factors"
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("OpenPostgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("OpenPostgres: ping: %w", err)
	}
	return &PostgresCurveFeed{db: db, table: table}, nil
}

func (f *PostgresCurveFeed) DiscountFactors(curveDate time.Time) (map[time.Time]float64, error) {
	query := fmt.Sprintf(
		"SELECT pillar_date, df FROM %s WHERE curve_date = $1 ORDER BY pillar_date", f.table)
	rows, err := f.db.Query(query, curveDate.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("PostgresCurveFeed: query: %w", err)
	}
	defer rows.Close()

	dfs := make(map[time.Time]float64)
	for rows.Next() {
		var pillar time.Time
		var df float64
		if err := rows.Scan(&pillar, &df); err != nil {
			return nil, fmt.Errorf("PostgresCurveFeed: scan: %w", err)
		}
		// Normalize to midnight UTC so dates compare with time.Time.Equal.
		pillar = time.Date(pillar.Year(), pillar.Month(), pillar.Day(), 0, 0, 0, 0, time.UTC)
		dfs[pillar] = df
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostgresCurveFeed: rows: %w", err)
	}
	if len(dfs) == 0 {
		return nil, fmt.Errorf("PostgresCurveFeed: no curve for %s", curveDate.Format("2006-01-02"))
	}
	return dfs, nil
}

// Close releases the underlying connection pool.
func (f *PostgresCurveFeed) Close() error {
	return f.db.Close()
}
