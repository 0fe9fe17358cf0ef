// Package stockfolio provides the types and operations for managing stock
// portfolios: per-instrument transaction ledgers, historical price lookups,
// valuation and performance analytics, and periodic investment plans.
//
// The core functionalities include:
//   - Ledger Management: Recording buys and sales per instrument in an
//     append-only record, with the held quantity always derived from the
//     full history.
//   - Price Series: Date-indexed lookups against historical daily series,
//     resolving non-trading days to the closest earlier trading date.
//   - Valuation and Cost Basis: Valuing a portfolio on any date and summing
//     what was actually invested up to a date.
//   - Analytics: Moving averages, daily and period gains, moving-average
//     crossover detection, and bucketed performance bands.
//   - Investment Plans: Dollar-cost-averaging strategies replayed against a
//     portfolio, period by period.
//
// This package serves as the foundational logic for the `stk` command-line
// tool; persistence lives in the store subpackage and markdown presentation
// in the renderer subpackage.
package stockfolio
