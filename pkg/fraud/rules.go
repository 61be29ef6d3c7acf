package fraud

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

const (
	// HighAmountThreshold is the amount above which a payment is flagged.
	HighAmountThreshold = 10000
	// RoundNumberFloor: round-number detection only applies above this amount.
	RoundNumberFloor = 1000
	// VelocityThreshold is the number of OTHER payments to the same payee
	// within VelocityWindow that triggers the velocity rule.
	VelocityThreshold = 3
	VelocityWindow    = time.Hour
)

// Payment is the slice of a payment the rules need.
type Payment struct {
	ID     uuid.UUID
	Payee  string
	Amount decimal.Decimal
}

// Alert is a draft fraud alert; persistence is the caller's concern.
type Alert struct {
	Severity    Severity
	Description string
}

// Evaluate runs every rule against the payment and returns one alert per
// fired rule. Rules are independent: a payment may trigger zero, one, or
// several alerts, and no rule suppresses another.
//
// recentSamePayee is the number of other payments to the same payee within
// the trailing VelocityWindow, excluding the payment itself. The data-access
// query lives with the caller so this function stays pure.
func Evaluate(p Payment, recentSamePayee int) []Alert {
	var alerts []Alert

	if p.Amount.GreaterThan(decimal.NewFromInt(HighAmountThreshold)) {
		alerts = append(alerts, Alert{
			Severity:    SeverityHigh,
			Description: fmt.Sprintf("High value transaction detected: $%s", p.Amount.StringFixed(2)),
		})
	}

	if p.Amount.GreaterThan(decimal.NewFromInt(RoundNumberFloor)) &&
		p.Amount.Mod(decimal.NewFromInt(100)).IsZero() {
		alerts = append(alerts, Alert{
			Severity:    SeverityLow,
			Description: "Round number transaction detected",
		})
	}

	if recentSamePayee >= VelocityThreshold {
		alerts = append(alerts, Alert{
			Severity: SeverityMedium,
			Description: fmt.Sprintf("High velocity: %d transactions for payee in last hour",
				recentSamePayee),
		})
	}

	return alerts
}
