package settlement

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	bank := NewBankAdapter("National Bank")
	reg.Register("bank_transfer", bank)
	reg.Register("check", bank)
	reg.Register("airtel_money", NewMobileMoneyAdapter("airtel"))

	got, err := reg.Resolve("bank_transfer")
	if err != nil {
		t.Fatalf("Resolve(bank_transfer) error: %v", err)
	}
	if got != bank {
		t.Error("Resolve(bank_transfer) did not return the registered adapter")
	}

	// check shares the bank adapter instance
	got, err = reg.Resolve("check")
	if err != nil {
		t.Fatalf("Resolve(check) error: %v", err)
	}
	if got != bank {
		t.Error("Resolve(check) should return the same bank adapter")
	}

	_, err = reg.Resolve("crypto")
	if !errors.Is(err, ErrUnsupportedMethod) {
		t.Errorf("Resolve(crypto) error = %v, want ErrUnsupportedMethod", err)
	}

	methods := reg.Methods()
	if len(methods) != 3 {
		t.Errorf("Methods() returned %d entries, want 3", len(methods))
	}
}

func TestBankAdapterProcess(t *testing.T) {
	adapter := NewBankAdapter("National Bank")

	res, err := adapter.Process(context.Background(), Request{
		PaymentID: "PAY-2026-0001",
		Payee:     "Acme Supplies",
		Amount:    decimal.RequireFromString("1250.50"),
	})
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}

	if !res.Success {
		t.Error("Success = false, want true")
	}
	if !strings.HasPrefix(res.TransactionID, "BANK-") {
		t.Errorf("TransactionID = %q, want BANK- prefix", res.TransactionID)
	}
	if !strings.Contains(res.Message, "$1250.50") || !strings.Contains(res.Message, "National Bank") {
		t.Errorf("Message = %q, want amount and bank name", res.Message)
	}
}

func TestBankAdapterDefaultName(t *testing.T) {
	adapter := NewBankAdapter("")

	res, err := adapter.Process(context.Background(), Request{
		Payee:  "Acme Supplies",
		Amount: decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if res.Rail != "Default Bank" {
		t.Errorf("Rail = %q, want Default Bank", res.Rail)
	}
}

func TestMobileMoneyAdapter(t *testing.T) {
	tests := []struct {
		provider   string
		wantPrefix string
		wantRail   string
	}{
		{"airtel", "AIRTEL-", "Airtel Money"},
		{"tnm", "TNM-", "TNM Mobile Money"},
		{"unknown", "UNKNOWN-", "Mobile Money"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			adapter := NewMobileMoneyAdapter(tt.provider)

			res, err := adapter.Process(context.Background(), Request{
				Payee:  "Jane Banda",
				Amount: decimal.RequireFromString("75.00"),
			})
			if err != nil {
				t.Fatalf("Process error: %v", err)
			}
			if !strings.HasPrefix(res.TransactionID, tt.wantPrefix) {
				t.Errorf("TransactionID = %q, want %s prefix", res.TransactionID, tt.wantPrefix)
			}
			if res.Rail != tt.wantRail {
				t.Errorf("Rail = %q, want %q", res.Rail, tt.wantRail)
			}

			bal, err := adapter.GetBalance(context.Background())
			if err != nil {
				t.Fatalf("GetBalance error: %v", err)
			}
			if bal.Currency != "MWK" {
				t.Errorf("Currency = %q, want MWK", bal.Currency)
			}
		})
	}
}

func TestCheckStatusEchoesTransactionID(t *testing.T) {
	adapters := map[string]Adapter{
		"bank":   NewBankAdapter("National Bank"),
		"mobile": NewMobileMoneyAdapter("airtel"),
	}

	for name, adapter := range adapters {
		t.Run(name, func(t *testing.T) {
			st, err := adapter.CheckStatus(context.Background(), "BANK-ABC123")
			if err != nil {
				t.Fatalf("CheckStatus error: %v", err)
			}
			if st.TransactionID != "BANK-ABC123" {
				t.Errorf("TransactionID = %q, want echo of input", st.TransactionID)
			}
			if st.Status != "completed" {
				t.Errorf("Status = %q, want completed", st.Status)
			}
		})
	}
}
