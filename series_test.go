package stockfolio

import (
	"errors"
	"testing"
)

// fixture: five trading days ending 2024-03-08, closes 100..104 oldest to
// newest, with the weekend 2024-03-09/10 absent.
func fiveDays() PriceSeries {
	return dailySeries(D("2024-03-08"), 5, 100, 1)
}

func TestPriceOn(t *testing.T) {
	s := fiveDays()
	tests := []struct {
		name string
		on   Date
		want Money
	}{
		{name: "exact trading day", on: D("2024-03-08"), want: M(104)},
		{name: "older trading day", on: D("2024-03-05"), want: M(101)},
		{name: "weekend falls back", on: D("2024-03-10"), want: M(104)},
		{name: "far future falls back to latest", on: D("2025-01-01"), want: M(104)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := s.PriceOn(test.on)
			if err != nil {
				t.Fatalf("PriceOn(%s) = %v", test.on, err)
			}
			if !got.Equal(test.want) {
				t.Errorf("PriceOn(%s) = %s, want %s", test.on, got, test.want)
			}
		})
	}

	if _, err := s.PriceOn(D("2024-03-03")); !errors.Is(err, ErrNoDataForDate) {
		t.Errorf("PriceOn(before series) = %v, want ErrNoDataForDate", err)
	}
}

func TestDateOn(t *testing.T) {
	s := fiveDays()
	got, err := s.DateOn(D("2024-03-10"))
	if err != nil {
		t.Fatalf("DateOn() = %v", err)
	}
	if got != D("2024-03-08") {
		t.Errorf("DateOn(weekend) = %s, want the Friday before", got)
	}
}

func TestBuyPriceOn(t *testing.T) {
	s := fiveDays()

	// The buy price is the close of the row just ahead of the matched one.
	got, err := s.BuyPriceOn(D("2024-03-06"))
	if err != nil {
		t.Fatalf("BuyPriceOn() = %v", err)
	}
	if !got.Equal(M(103)) {
		t.Errorf("BuyPriceOn(2024-03-06) = %s, want 103", got)
	}

	// The scan starts at the second row, so the latest date resolves to the
	// second row and still returns the newest close.
	got, err = s.BuyPriceOn(D("2024-03-08"))
	if err != nil {
		t.Fatalf("BuyPriceOn(latest) = %v", err)
	}
	if !got.Equal(M(104)) {
		t.Errorf("BuyPriceOn(latest) = %s, want 104", got)
	}

	// The oldest row can be matched but never returned as a buy price date.
	if _, err := s.BuyPriceOn(D("2024-03-03")); !errors.Is(err, ErrNoDataForDate) {
		t.Errorf("BuyPriceOn(before series) = %v, want ErrNoDataForDate", err)
	}
	single := PriceSeries{{Date: D("2024-03-08"), Open: M(99), Close: M(100)}}
	if _, err := single.BuyPriceOn(D("2024-03-08")); !errors.Is(err, ErrNoDataForDate) {
		t.Errorf("BuyPriceOn(single row) = %v, want ErrNoDataForDate", err)
	}
}

func TestDailyGainOrLoss(t *testing.T) {
	s := fiveDays()
	got, err := s.DailyGainOrLoss(D("2024-03-08"))
	if err != nil {
		t.Fatalf("DailyGainOrLoss() = %v", err)
	}
	if !got.Equal(M(1)) {
		t.Errorf("DailyGainOrLoss() = %s, want 1", got)
	}
}

func TestMovingAverage(t *testing.T) {
	s := fiveDays()
	tests := []struct {
		name    string
		on      Date
		window  int
		want    Money
		wantErr error
	}{
		{name: "three day window", on: D("2024-03-08"), window: 3, want: M(103)},
		{name: "full window", on: D("2024-03-08"), window: 5, want: M(102)},
		{name: "window from older day", on: D("2024-03-06"), window: 3, want: M(101)},
		{name: "window larger than history", on: D("2024-03-08"), window: 6, wantErr: ErrInsufficientData},
		{name: "window exceeds remaining rows", on: D("2024-03-05"), window: 3, wantErr: ErrInsufficientData},
		{name: "date before series", on: D("2024-03-01"), window: 1, wantErr: ErrNoDataForDate},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := s.MovingAverage(test.on, test.window)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("MovingAverage() = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("MovingAverage() = %v", err)
			}
			if !got.Equal(test.want) {
				t.Errorf("MovingAverage() = %s, want %s", got, test.want)
			}
		})
	}
}

// A one-day moving average is the as-of price itself.
func TestMovingAverageWindowOne(t *testing.T) {
	s := fiveDays()
	for on := range (Range{From: D("2024-03-04"), To: D("2024-03-10")}).Days() {
		avg, err := s.MovingAverage(on, 1)
		if err != nil {
			t.Fatalf("MovingAverage(%s, 1) = %v", on, err)
		}
		price, err := s.PriceOn(on)
		if err != nil {
			t.Fatalf("PriceOn(%s) = %v", on, err)
		}
		if !avg.Equal(price) {
			t.Errorf("MovingAverage(%s, 1) = %s, want PriceOn = %s", on, avg, price)
		}
	}
}

func TestMovingAverageInvalidWindow(t *testing.T) {
	s := fiveDays()
	if _, err := s.MovingAverage(D("2024-03-08"), 0); err == nil {
		t.Error("MovingAverage(window 0) = nil, want error")
	}
}
