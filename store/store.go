// Package store persists portfolios and strategies in a SQLite database.
//
// One record per instrument carries the symbol, the comma-joined transaction
// dates and quantities (parallel, positionally matched), and the materialized
// net quantity. One record per strategy carries the schedule and its
// comma-joined targets. The database path is an explicit constructor
// argument; there is no process-wide storage location.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	stockfolio "github.com/stockfolio/stockfolio"
)

const schema = `
CREATE TABLE IF NOT EXISTS portfolio (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS instrument (
	id                  TEXT PRIMARY KEY,
	portfolio_id        TEXT NOT NULL REFERENCES portfolio(id) ON DELETE CASCADE,
	position            INTEGER NOT NULL,
	symbol              TEXT NOT NULL,
	transact_dates      TEXT NOT NULL,
	transact_quantities TEXT NOT NULL,
	quantity            TEXT NOT NULL,
	UNIQUE (portfolio_id, position)
);

CREATE TABLE IF NOT EXISTS strategy (
	id           TEXT PRIMARY KEY,
	portfolio_id TEXT NOT NULL UNIQUE REFERENCES portfolio(id) ON DELETE CASCADE,
	start_date   TEXT NOT NULL,
	end_date     TEXT NOT NULL,
	period_days  INTEGER NOT NULL,
	symbols      TEXT NOT NULL,
	amounts      TEXT NOT NULL
);
`

// continuingSentinel marks an open-ended strategy in the end_date column.
const continuingSentinel = ""

// Store saves and reconstructs portfolios and strategies. Concurrent access
// from multiple processes is out of scope: last writer wins.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and applies
// the schema idempotently.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// ListPortfolios returns the saved portfolio names in alphabetical order.
func (s *Store) ListPortfolios() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM portfolio ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SavePortfolio writes the portfolio and all its instrument records,
// replacing any previous snapshot of the same name.
func (s *Store) SavePortfolio(p *stockfolio.Portfolio) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	id, err := portfolioID(tx, p.Name())
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM instrument WHERE portfolio_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear instrument records: %w", err)
	}
	for position, ins := range p.Instruments() {
		_, err := tx.Exec(`
			INSERT INTO instrument (id, portfolio_id, position, symbol, transact_dates, transact_quantities, quantity)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), id, position, ins.Symbol(),
			stockfolio.JoinDates(ins.Ledger().Dates()),
			stockfolio.JoinQuantities(ins.Ledger().Quantities()),
			ins.Ledger().Quantity().String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert instrument %s: %w", ins.Symbol(), err)
		}
	}
	return tx.Commit()
}

// LoadPortfolio reconstructs a saved portfolio. Instruments added to the
// reconstructed portfolio fetch their price series from the given provider.
func (s *Store) LoadPortfolio(name string, provider stockfolio.PriceProvider) (*stockfolio.Portfolio, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM portfolio WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %q", ErrPortfolioNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio %q: %w", name, err)
	}

	rows, err := s.db.Query(`
		SELECT symbol, transact_dates, transact_quantities
		FROM instrument WHERE portfolio_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query instrument records: %w", err)
	}
	defer rows.Close()

	p := stockfolio.NewPortfolio(name, provider)
	for rows.Next() {
		var symbol, dates, quantities string
		if err := rows.Scan(&symbol, &dates, &quantities); err != nil {
			return nil, fmt.Errorf("failed to scan instrument record: %w", err)
		}
		parsedDates, err := stockfolio.SplitDates(dates)
		if err != nil {
			return nil, fmt.Errorf("corrupt dates for %s: %w", symbol, err)
		}
		parsedQuantities, err := stockfolio.SplitQuantities(quantities)
		if err != nil {
			return nil, fmt.Errorf("corrupt quantities for %s: %w", symbol, err)
		}
		ledger, err := stockfolio.RestoreLedger(parsedDates, parsedQuantities)
		if err != nil {
			return nil, fmt.Errorf("corrupt ledger for %s: %w", symbol, err)
		}
		p.RestoreInstrument(symbol, ledger)
	}
	return p, rows.Err()
}

// DeletePortfolio removes a portfolio, its instrument records, and its
// strategy.
func (s *Store) DeletePortfolio(name string) error {
	res, err := s.db.Exec(`DELETE FROM portfolio WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrPortfolioNotFound, name)
	}
	return nil
}

// SaveStrategy writes the strategy attached to the named portfolio,
// replacing any previous one.
func (s *Store) SaveStrategy(portfolioName string, strategy stockfolio.Strategy) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	id, err := portfolioID(tx, portfolioName)
	if err != nil {
		return err
	}

	end := continuingSentinel
	if !strategy.Continuing() {
		end = strategy.End.String()
	}
	symbols := make([]string, len(strategy.Targets))
	amounts := make([]string, len(strategy.Targets))
	for i, target := range strategy.Targets {
		symbols[i] = target.Symbol
		amounts[i] = target.Amount.Fixed()
	}

	_, err = tx.Exec(`
		INSERT INTO strategy (id, portfolio_id, start_date, end_date, period_days, symbols, amounts)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (portfolio_id) DO UPDATE SET
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			period_days = excluded.period_days,
			symbols = excluded.symbols,
			amounts = excluded.amounts`,
		uuid.NewString(), id, strategy.Start.String(), end, strategy.PeriodDays,
		joinStrings(symbols), joinStrings(amounts),
	)
	if err != nil {
		return fmt.Errorf("failed to save strategy: %w", err)
	}
	return tx.Commit()
}

// LoadStrategy reconstructs the strategy saved for the named portfolio.
func (s *Store) LoadStrategy(portfolioName string) (stockfolio.Strategy, error) {
	var start, end, symbols, amounts string
	var periodDays int
	err := s.db.QueryRow(`
		SELECT st.start_date, st.end_date, st.period_days, st.symbols, st.amounts
		FROM strategy st JOIN portfolio p ON p.id = st.portfolio_id
		WHERE p.name = ?`, portfolioName).Scan(&start, &end, &periodDays, &symbols, &amounts)
	if err == sql.ErrNoRows {
		return stockfolio.Strategy{}, fmt.Errorf("%w: %q", ErrStrategyNotFound, portfolioName)
	}
	if err != nil {
		return stockfolio.Strategy{}, fmt.Errorf("failed to query strategy: %w", err)
	}

	strategy := stockfolio.Strategy{PeriodDays: periodDays}
	if strategy.Start, err = stockfolio.ParseDate(start); err != nil {
		return stockfolio.Strategy{}, fmt.Errorf("corrupt strategy start date: %w", err)
	}
	if end != continuingSentinel {
		if strategy.End, err = stockfolio.ParseDate(end); err != nil {
			return stockfolio.Strategy{}, fmt.Errorf("corrupt strategy end date: %w", err)
		}
	}

	symbolList := splitStrings(symbols)
	amountList := splitStrings(amounts)
	if len(symbolList) != len(amountList) {
		return stockfolio.Strategy{}, fmt.Errorf("corrupt strategy: %d symbols, %d amounts", len(symbolList), len(amountList))
	}
	for i := range symbolList {
		amount, err := stockfolio.ParseMoney(amountList[i])
		if err != nil {
			return stockfolio.Strategy{}, fmt.Errorf("corrupt strategy amount for %s: %w", symbolList[i], err)
		}
		strategy.Targets = append(strategy.Targets, stockfolio.Target{Symbol: symbolList[i], Amount: amount})
	}
	return strategy, nil
}

// portfolioID finds or creates the row for the named portfolio.
func portfolioID(tx *sql.Tx, name string) (string, error) {
	var id string
	err := tx.QueryRow(`SELECT id FROM portfolio WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		id = uuid.NewString()
		if _, err := tx.Exec(`INSERT INTO portfolio (id, name) VALUES (?, ?)`, id, name); err != nil {
			return "", fmt.Errorf("failed to insert portfolio %q: %w", name, err)
		}
		return id, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query portfolio %q: %w", name, err)
	}
	return id, nil
}
