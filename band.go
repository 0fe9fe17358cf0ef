package stockfolio

import (
	"fmt"
	"strings"
)

// Span limits per granularity, exclusive on both ends: a span equal to a
// bound is already a violation.
const (
	minDailySpan   = 5   // days
	maxDailySpan   = 30  // days
	minWeeklySpan  = 35  // weeks
	maxWeeklySpan  = 210 // weeks
	minMonthlySpan = 5   // months
	maxMonthlySpan = 30  // months
)

// BandLine is one bucket of a band report. Bars is floor(value / 1000).
type BandLine struct {
	Label string
	Value Money
	Bars  int
}

// Band summarizes portfolio value over a range as fixed-width buckets,
// one bar per thousand.
type Band struct {
	Name        string
	From, To    Date
	Granularity Granularity
	Lines       []BandLine
}

// BuildBand buckets the portfolio value over [start, end] at the requested
// granularity. The requested span must fit the granularity-specific window;
// violations fail with ErrRangeTooNarrow or ErrRangeTooWide before any
// valuation happens.
func (p *Portfolio) BuildBand(start, end Date, granularity Granularity) (*Band, error) {
	r, err := NewRange(start, end)
	if err != nil {
		return nil, err
	}
	if err := checkBandSpan(r, granularity); err != nil {
		return nil, err
	}

	band := &Band{Name: p.name, From: start, To: end, Granularity: granularity}
	switch granularity {
	case Daily:
		for on := range r.Days() {
			value := p.valueAsOf(on)
			band.append(on.String(), value)
		}
	case Weekly:
		// Buckets stride 8 days: the bucket averages day 0 through day 7
		// inclusive and the next bucket starts the day after.
		for on := r.From; !on.After(r.To); {
			last := on.Add(7)
			value, err := p.AverageValue(on, last)
			if err != nil {
				return nil, err
			}
			band.append(fmt.Sprintf("%s-%s", on, last), value)
			on = last.Add(1)
		}
	case Monthly:
		// The cursor walks first-of-month dates: stepping a month-end day
		// would normalize past short months and skip them.
		for first := r.From.StartOfMonth(); !first.After(r.To); first = first.AddMonth(1) {
			value, err := p.AverageValue(first, first.EndOfMonth())
			if err != nil {
				return nil, err
			}
			band.append(strings.ToUpper(first.Format("Jan"))+first.Format("2006"), value)
		}
	}
	return band, nil
}

func (b *Band) append(label string, value Money) {
	bars := value.Thousands()
	if bars < 0 {
		bars = 0
	}
	b.Lines = append(b.Lines, BandLine{Label: label, Value: value, Bars: bars})
}

func checkBandSpan(r Range, granularity Granularity) error {
	var span, min, max int
	var unit string
	switch granularity {
	case Daily:
		span, min, max, unit = r.From.DaysUntil(r.To), minDailySpan, maxDailySpan, "days"
	case Weekly:
		span, min, max, unit = r.From.WeeksUntil(r.To), minWeeklySpan, maxWeeklySpan, "weeks"
	case Monthly:
		span, min, max, unit = r.From.MonthsUntil(r.To), minMonthlySpan, maxMonthlySpan, "months"
	}
	if span <= min {
		return fmt.Errorf("%w: %d %s, want more than %d", ErrRangeTooNarrow, span, unit, min)
	}
	if span >= max {
		return fmt.Errorf("%w: %d %s, want fewer than %d", ErrRangeTooWide, span, unit, max)
	}
	return nil
}

// String renders the band as the fixed textual graph template.
func (b *Band) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Performance of portfolio %s from %s to %s\n\n", b.Name, b.From, b.To)
	for _, line := range b.Lines {
		fmt.Fprintf(&sb, "%s: %s\n", line.Label, strings.Repeat("*", line.Bars))
	}
	sb.WriteString("\nScale: * = $1000\n")
	return sb.String()
}
