package stockfolio

import "errors"

// Ledger errors represent violations of the ledger's position invariant.
var (
	// ErrInsufficientQuantity indicates a sell that would drive the cumulative
	// position at its date below zero.
	ErrInsufficientQuantity = errors.New("insufficient quantity to sell")

	// ErrNegativeQuantity indicates a buy or sell request with a quantity
	// that is not strictly positive.
	ErrNegativeQuantity = errors.New("quantity must be positive")

	// ErrTransactionTooEarly indicates a buy or sell dated before the
	// instrument's latest recorded transaction.
	ErrTransactionTooEarly = errors.New("transaction predates the latest recorded transaction")
)

// Price-series errors distinguish a missing series from a series that does
// not reach back far enough.
var (
	// ErrNoDataForSymbol indicates the provider has no series for the symbol.
	ErrNoDataForSymbol = errors.New("no data found for given stock symbol")

	// ErrNoDataForDate indicates the series was exhausted before a row at or
	// before the requested date was found.
	ErrNoDataForDate = errors.New("no data found for given date")

	// ErrInsufficientData indicates a moving-average window larger than the
	// available history from the matched row backward.
	ErrInsufficientData = errors.New("insufficient data to calculate moving average")
)

// Provider errors, reported by PriceProvider implementations.
var (
	// ErrSymbolNotFound indicates the upstream source rejected the symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrRateLimited indicates the upstream source throttled the request.
	ErrRateLimited = errors.New("rate limited by price source")
)

// Range errors, reported by analytics and banding operations.
var (
	// ErrInvalidRange indicates a start date after the end date.
	ErrInvalidRange = errors.New("start date should not be greater than end date")

	// ErrRangeTooNarrow indicates a banding span below the granularity minimum.
	ErrRangeTooNarrow = errors.New("range too narrow for requested granularity")

	// ErrRangeTooWide indicates a banding span above the granularity maximum.
	ErrRangeTooWide = errors.New("range too wide for requested granularity")
)

// Collection errors.
var (
	// ErrDuplicateSymbol indicates an instrument with the same symbol is
	// already held in the portfolio.
	ErrDuplicateSymbol = errors.New("symbol already in portfolio")

	// ErrNoSuchInstrument indicates an instrument index outside the portfolio.
	ErrNoSuchInstrument = errors.New("no such instrument in portfolio")
)
