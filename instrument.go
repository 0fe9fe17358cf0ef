package stockfolio

import (
	"fmt"
	"strings"
)

// Instrument is one holding: an uppercase symbol, its transaction ledger, and
// the historical price series used for analytics. The series is fetched from
// the provider on first use and cached for the session.
type Instrument struct {
	symbol   string
	ledger   *Ledger
	provider PriceProvider
	series   PriceSeries
}

// normalizeSymbol uppercases and trims a ticker symbol.
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// NewInstrument creates an instrument with an empty ledger. The symbol is
// uppercase-normalized and immutable.
func NewInstrument(symbol string, provider PriceProvider) *Instrument {
	return &Instrument{
		symbol:   normalizeSymbol(symbol),
		ledger:   NewLedger(),
		provider: provider,
	}
}

// Symbol returns the instrument's symbol.
func (s *Instrument) Symbol() string { return s.symbol }

// Ledger returns the instrument's transaction ledger.
func (s *Instrument) Ledger() *Ledger { return s.ledger }

// Series returns the cached price series, fetching it on first use.
func (s *Instrument) Series() (PriceSeries, error) {
	if s.series != nil {
		return s.series, nil
	}
	series, err := s.provider.Fetch(s.symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoDataForSymbol, s.symbol, err)
	}
	s.series = series
	return s.series, nil
}

// PriceOn returns the closing price on the closest available date at or
// before the target.
func (s *Instrument) PriceOn(on Date) (Money, error) {
	series, err := s.Series()
	if err != nil {
		return Money{}, err
	}
	return series.PriceOn(on)
}

// EffectiveDateOn returns the trading date the as-of lookup matched.
func (s *Instrument) EffectiveDateOn(on Date) (Date, error) {
	series, err := s.Series()
	if err != nil {
		return Date{}, err
	}
	return series.DateOn(on)
}

// BuyPriceOn returns the last known close ahead of the effective trading
// date, the execution price for dollar-amount buys.
func (s *Instrument) BuyPriceOn(on Date) (Money, error) {
	series, err := s.Series()
	if err != nil {
		return Money{}, err
	}
	return series.BuyPriceOn(on)
}

// DailyGainOrLoss returns close minus open for the matched trading day.
func (s *Instrument) DailyGainOrLoss(on Date) (Money, error) {
	series, err := s.Series()
	if err != nil {
		return Money{}, err
	}
	return series.DailyGainOrLoss(on)
}

// PeriodGainOrLoss returns the difference between the closing prices on the
// two dates. It fails with ErrInvalidRange when start is after end.
func (s *Instrument) PeriodGainOrLoss(start, end Date) (Money, error) {
	r, err := NewRange(start, end)
	if err != nil {
		return Money{}, err
	}
	startPrice, err := s.PriceOn(r.From)
	if err != nil {
		return Money{}, err
	}
	endPrice, err := s.PriceOn(r.To)
	if err != nil {
		return Money{}, err
	}
	return endPrice.Sub(startPrice), nil
}

// MovingAverage returns the window-day moving average of the close ending at
// the matched trading day and reaching backward in time.
func (s *Instrument) MovingAverage(on Date, window int) (Money, error) {
	series, err := s.Series()
	if err != nil {
		return Money{}, err
	}
	return series.MovingAverage(on, window)
}

// CostBasisAsOf sums signedQuantity times the buy price at each transaction's
// own date, over every transaction dated on or before the target. The buy
// price captures what was actually paid, not the current price.
func (s *Instrument) CostBasisAsOf(on Date) (Money, error) {
	total := M(0)
	for _, tx := range s.ledger.transactions {
		if tx.Date.After(on) {
			continue
		}
		price, err := s.BuyPriceOn(tx.Date)
		if err != nil {
			return Money{}, err
		}
		total = total.Add(price.Mul(tx.Quantity))
	}
	return total, nil
}

// crossoverWindow is the reference moving average used by Crossovers.
const crossoverWindow = 30

// Crossover is a day on which the price (or short moving average) flipped
// sides relative to a reference moving average, with the prior day already
// on the other side.
type Crossover struct {
	Date     Date
	Positive bool
}

func (c Crossover) String() string {
	if c.Positive {
		return fmt.Sprintf("Positive crossover on %s", c.Date)
	}
	return fmt.Sprintf("Negative crossover on %s", c.Date)
}

// Crossovers walks every calendar day in [start, end] comparing the close
// against the 30-day moving average. A crossover is reported only when the
// previous day's gap had the same sign before the flip, so a single-day
// touch never triggers a report. The carried gap starts at zero, which
// silences the first day of the walk.
func (s *Instrument) Crossovers(start, end Date) ([]Crossover, error) {
	r, err := NewRange(start, end)
	if err != nil {
		return nil, err
	}
	var crossovers []Crossover
	diff := M(0)
	for on := range r.Days() {
		price, err := s.PriceOn(on)
		if err != nil {
			return nil, err
		}
		avg, err := s.MovingAverage(on, crossoverWindow)
		if err != nil {
			return nil, err
		}
		switch {
		case price.GreaterThan(avg) && diff.IsPositive():
			crossovers = append(crossovers, Crossover{Date: on, Positive: true})
		case price.LessThan(avg) && diff.IsNegative():
			crossovers = append(crossovers, Crossover{Date: on, Positive: false})
		}
		diff = avg.Sub(price)
	}
	return crossovers, nil
}

// MovingCrossovers is the same walk as Crossovers, comparing a short moving
// average against a long one instead of the raw close.
func (s *Instrument) MovingCrossovers(start, end Date, short, long int) ([]Crossover, error) {
	r, err := NewRange(start, end)
	if err != nil {
		return nil, err
	}
	var crossovers []Crossover
	diff := M(0)
	for on := range r.Days() {
		shortAvg, err := s.MovingAverage(on, short)
		if err != nil {
			return nil, err
		}
		longAvg, err := s.MovingAverage(on, long)
		if err != nil {
			return nil, err
		}
		switch {
		case shortAvg.GreaterThan(longAvg) && diff.IsPositive():
			crossovers = append(crossovers, Crossover{Date: on, Positive: true})
		case shortAvg.LessThan(longAvg) && diff.IsNegative():
			crossovers = append(crossovers, Crossover{Date: on, Positive: false})
		}
		diff = longAvg.Sub(shortAvg)
	}
	return crossovers, nil
}
