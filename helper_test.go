package stockfolio

import "fmt"

// D is a helper for tests to create a date from a literal.
func D(s string) Date { return MustParseDate(s) }

// dailySeries builds a most-recent-first series of consecutive calendar days
// ending at last. Closes start at base on the oldest day and rise by step per
// day; opens sit one below the close.
func dailySeries(last Date, days int, base, step float64) PriceSeries {
	series := make(PriceSeries, days)
	for i := 0; i < days; i++ {
		close := base + float64(days-1-i)*step
		series[i] = PriceRow{
			Date:  last.Add(-i),
			Open:  M(close - 1),
			Close: M(close),
		}
	}
	return series
}

// memProvider serves fixed series per symbol.
type memProvider map[string]PriceSeries

func (p memProvider) Fetch(symbol string) (PriceSeries, error) {
	series, ok := p[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	return series, nil
}
