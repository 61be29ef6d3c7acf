package settlement

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MobileMoneyAdapter settles payments through a mobile-money provider.
// Two providers are known: "airtel" (Airtel Money) and "tnm" (TNM Mobile
// Money). Like BankAdapter, this is a mock backend that always succeeds.
type MobileMoneyAdapter struct {
	provider string
}

var providerNames = map[string]string{
	"airtel": "Airtel Money",
	"tnm":    "TNM Mobile Money",
}

func NewMobileMoneyAdapter(provider string) *MobileMoneyAdapter {
	return &MobileMoneyAdapter{provider: strings.ToLower(provider)}
}

func (a *MobileMoneyAdapter) displayName() string {
	if name, ok := providerNames[a.provider]; ok {
		return name
	}
	return "Mobile Money"
}

func (a *MobileMoneyAdapter) Process(ctx context.Context, req Request) (*Result, error) {
	return &Result{
		Success:       true,
		TransactionID: newTransactionID(strings.ToUpper(a.provider)),
		Message: fmt.Sprintf("Payment of $%s to %s processed successfully via %s",
			req.Amount.StringFixed(2), req.Payee, a.displayName()),
		Rail: a.displayName(),
	}, nil
}

func (a *MobileMoneyAdapter) CheckStatus(ctx context.Context, transactionID string) (*Status, error) {
	return &Status{
		TransactionID: transactionID,
		Status:        "completed",
		Message:       fmt.Sprintf("Transaction %s completed successfully", transactionID),
	}, nil
}

func (a *MobileMoneyAdapter) GetBalance(ctx context.Context) (*Balance, error) {
	return &Balance{
		Balance:  decimal.NewFromInt(500000),
		Currency: "MWK",
		Rail:     a.displayName(),
	}, nil
}
