package stockfolio

import "fmt"

// PriceRow is one trading day of a historical price series.
type PriceRow struct {
	Date  Date
	Open  Money
	Close Money
}

// PriceSeries is a historical daily price series, ordered most recent first,
// as delivered by providers. Lookups scan forward from "now" toward the past.
type PriceSeries []PriceRow

// indexAsOf returns the index of the first row whose date is on or before
// the target, scanning from the most recent row backward in time.
func (s PriceSeries) indexAsOf(on Date) (int, error) {
	for i, row := range s {
		if !row.Date.After(on) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNoDataForDate, on)
}

// RowOn returns the row for the closest available date at or before the target.
func (s PriceSeries) RowOn(on Date) (PriceRow, error) {
	i, err := s.indexAsOf(on)
	if err != nil {
		return PriceRow{}, err
	}
	return s[i], nil
}

// PriceOn returns the closing price for the closest available date at or
// before the target.
func (s PriceSeries) PriceOn(on Date) (Money, error) {
	row, err := s.RowOn(on)
	if err != nil {
		return Money{}, err
	}
	return row.Close, nil
}

// DateOn returns the effective trading date matched for the target, which may
// be earlier than the target when the market was closed on it.
func (s PriceSeries) DateOn(on Date) (Date, error) {
	row, err := s.RowOn(on)
	if err != nil {
		return Date{}, err
	}
	return row.Date, nil
}

// BuyPriceOn returns the closing price of the row scanned immediately before
// the matched row, that is the last known close ahead of the effective
// trading date. It is the execution price used to convert a planned dollar
// amount into shares. The scan starts at the second row, so a single-row
// series has no buy price.
func (s PriceSeries) BuyPriceOn(on Date) (Money, error) {
	for i := 1; i < len(s); i++ {
		if !s[i].Date.After(on) {
			return s[i-1].Close, nil
		}
	}
	return Money{}, fmt.Errorf("%w: %s", ErrNoDataForDate, on)
}

// DailyGainOrLoss returns close minus open for the matched row.
func (s PriceSeries) DailyGainOrLoss(on Date) (Money, error) {
	row, err := s.RowOn(on)
	if err != nil {
		return Money{}, err
	}
	return row.Close.Sub(row.Open), nil
}

// MovingAverage averages the close over the matched row and the window-1 next
// rows going backward in time. It fails with ErrInsufficientData when fewer
// than window rows remain from the matched row.
func (s PriceSeries) MovingAverage(on Date, window int) (Money, error) {
	if window <= 0 {
		return Money{}, fmt.Errorf("invalid moving average window %d", window)
	}
	i, err := s.indexAsOf(on)
	if err != nil {
		return Money{}, err
	}
	if i+window > len(s) {
		return Money{}, fmt.Errorf("%w: %d rows from %s, want %d", ErrInsufficientData, len(s)-i, on, window)
	}
	sum := M(0)
	for _, row := range s[i : i+window] {
		sum = sum.Add(row.Close)
	}
	return sum.DivInt(window), nil
}
