package cmd

import (
	"testing"

	stockfolio "github.com/stockfolio/stockfolio"
)

func TestParseTargets(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []stockfolio.Target
		wantErr bool
	}{
		{
			name:  "single",
			input: "GOOG=800",
			want:  []stockfolio.Target{{Symbol: "GOOG", Amount: stockfolio.M(800)}},
		},
		{
			name:  "multiple",
			input: "GOOG=800,AAPL=1200",
			want: []stockfolio.Target{
				{Symbol: "GOOG", Amount: stockfolio.M(800)},
				{Symbol: "AAPL", Amount: stockfolio.M(1200)},
			},
		},
		{
			name:    "missing amount",
			input:   "GOOG",
			wantErr: true,
		},
		{
			name:    "bad amount",
			input:   "GOOG=lots",
			wantErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := parseTargets(test.input)
			if test.wantErr {
				if err == nil {
					t.Fatalf("parseTargets(%q) = %v, want error", test.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTargets(%q) = %v", test.input, err)
			}
			if len(got) != len(test.want) {
				t.Fatalf("parseTargets(%q) returned %d targets, want %d", test.input, len(got), len(test.want))
			}
			for i := range test.want {
				if got[i].Symbol != test.want[i].Symbol || !got[i].Amount.Equal(test.want[i].Amount) {
					t.Errorf("target %d = %+v, want %+v", i, got[i], test.want[i])
				}
			}
		})
	}
}
