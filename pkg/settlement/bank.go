package settlement

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAdapter settles payments over the bank rail. It is parameterized by a
// display name so the same implementation backs plain bank transfers and
// check processing.
//
// This is a mock backend: every settlement succeeds with a fabricated
// transaction id. A production integration would replace Process with the
// bank's API call behind a timeout and bounded retries.
type BankAdapter struct {
	bankName string
}

func NewBankAdapter(bankName string) *BankAdapter {
	if bankName == "" {
		bankName = "Default Bank"
	}
	return &BankAdapter{bankName: bankName}
}

func (a *BankAdapter) Process(ctx context.Context, req Request) (*Result, error) {
	return &Result{
		Success:       true,
		TransactionID: newTransactionID("BANK"),
		Message: fmt.Sprintf("Payment of $%s to %s processed successfully via %s",
			req.Amount.StringFixed(2), req.Payee, a.bankName),
		Rail: a.bankName,
	}, nil
}

func (a *BankAdapter) CheckStatus(ctx context.Context, transactionID string) (*Status, error) {
	return &Status{
		TransactionID: transactionID,
		Status:        "completed",
		Message:       fmt.Sprintf("Transaction %s completed successfully", transactionID),
	}, nil
}

func (a *BankAdapter) GetBalance(ctx context.Context) (*Balance, error) {
	return &Balance{
		Balance:  decimal.NewFromInt(1000000),
		Currency: "USD",
		Rail:     a.bankName,
	}, nil
}

// newTransactionID fabricates a provider-style transaction reference. The
// UUID-derived suffix avoids the collision risk of a small random range.
func newTransactionID(prefix string) string {
	suffix := strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
	return fmt.Sprintf("%s-%s", prefix, suffix)
}
