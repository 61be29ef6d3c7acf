package fraud

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name            string
		amount          string
		recentSamePayee int
		wantCount       int
		wantSeverities  []Severity
	}{
		{
			name:      "small odd amount no alerts",
			amount:    "423.17",
			wantCount: 0,
		},
		{
			name:           "high amount",
			amount:         "15000.50",
			wantCount:      1,
			wantSeverities: []Severity{SeverityHigh},
		},
		{
			name:           "round number above floor",
			amount:         "2500.00",
			wantCount:      1,
			wantSeverities: []Severity{SeverityLow},
		},
		{
			name:      "round number below floor not flagged",
			amount:    "500.00",
			wantCount: 0,
		},
		{
			name:      "exactly at high threshold not flagged",
			amount:    "10000.00", // threshold is strict, but 10000 is round
			wantCount: 1,
			wantSeverities: []Severity{
				SeverityLow,
			},
		},
		{
			name:            "velocity only",
			amount:          "99.99",
			recentSamePayee: 3,
			wantCount:       1,
			wantSeverities:  []Severity{SeverityMedium},
		},
		{
			name:            "velocity below threshold",
			amount:          "99.99",
			recentSamePayee: 2,
			wantCount:       0,
		},
		{
			name:            "high round and velocity stack",
			amount:          "20000.00",
			recentSamePayee: 5,
			wantCount:       3,
			wantSeverities:  []Severity{SeverityHigh, SeverityLow, SeverityMedium},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Payment{
				ID:     uuid.New(),
				Payee:  "Acme Supplies",
				Amount: decimal.RequireFromString(tt.amount),
			}

			alerts := Evaluate(p, tt.recentSamePayee)

			if len(alerts) != tt.wantCount {
				t.Fatalf("alert count = %d, want %d (alerts: %+v)", len(alerts), tt.wantCount, alerts)
			}
			for i, want := range tt.wantSeverities {
				if alerts[i].Severity != want {
					t.Errorf("alerts[%d].Severity = %s, want %s", i, alerts[i].Severity, want)
				}
			}
		})
	}
}

func TestEvaluateDescriptions(t *testing.T) {
	p := Payment{
		ID:     uuid.New(),
		Payee:  "Acme Supplies",
		Amount: decimal.RequireFromString("12345.60"),
	}

	alerts := Evaluate(p, 4)
	if len(alerts) != 2 {
		t.Fatalf("alert count = %d, want 2", len(alerts))
	}

	if !strings.Contains(alerts[0].Description, "$12345.60") {
		t.Errorf("high value description should carry the formatted amount, got %q", alerts[0].Description)
	}
	if !strings.Contains(alerts[1].Description, "4 transactions") {
		t.Errorf("velocity description should carry the count, got %q", alerts[1].Description)
	}
}
