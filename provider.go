package stockfolio

// PriceProvider supplies the historical daily price series for a symbol,
// ordered most recent first.
//
// Fetch blocks until the full series is available or fails. It reports
// ErrSymbolNotFound when the source does not know the symbol, and
// ErrRateLimited when the source throttled the call.
type PriceProvider interface {
	Fetch(symbol string) (PriceSeries, error)
}

// ProviderFunc adapts a function to the PriceProvider interface.
type ProviderFunc func(symbol string) (PriceSeries, error)

func (f ProviderFunc) Fetch(symbol string) (PriceSeries, error) { return f(symbol) }
