package settlement

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedMethod signals a payment method with no registered adapter.
// This is a configuration problem, not a user error.
var ErrUnsupportedMethod = errors.New("settlement: unsupported payment method")

// Request carries the fields a rail needs to settle a payment.
type Request struct {
	PaymentID string
	Payee     string
	Reference string
	Amount    decimal.Decimal
}

// Result is the normalized outcome of a settlement attempt.
// Success=false is a valid outcome, not an error: the caller records it as a
// failed payment with the message preserved in the audit trail.
type Result struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
	Rail          string `json:"rail,omitempty"`
}

// Status reports the provider-side state of a previously submitted transaction.
type Status struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Message       string `json:"message"`
}

// Balance reports the funds available on the rail's settlement account.
type Balance struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Rail     string          `json:"rail,omitempty"`
}

// Adapter is the uniform capability set every payment rail implements.
type Adapter interface {
	Process(ctx context.Context, req Request) (*Result, error)
	CheckStatus(ctx context.Context, transactionID string) (*Status, error)
	GetBalance(ctx context.Context) (*Balance, error)
}

// Registry maps payment method codes to adapter instances. It is built once
// in bootstrap and injected into the payment service, which keeps the
// orchestrator testable with fake adapters.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

func (r *Registry) Register(method string, adapter Adapter) {
	r.adapters[method] = adapter
}

// Resolve returns the adapter for the given method or ErrUnsupportedMethod.
func (r *Registry) Resolve(method string) (Adapter, error) {
	adapter, ok := r.adapters[method]
	if !ok {
		return nil, ErrUnsupportedMethod
	}
	return adapter, nil
}

// Methods lists the registered method codes (for config introspection).
func (r *Registry) Methods() []string {
	methods := make([]string, 0, len(r.adapters))
	for m := range r.adapters {
		methods = append(methods, m)
	}
	return methods
}
