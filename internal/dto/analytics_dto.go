package dto

import "github.com/shopspring/decimal"

// DashboardResponse aggregates the headline figures for the back-office
// dashboard. Cached briefly server-side because it fans out several counts.
type DashboardResponse struct {
	TotalPayments       int64           `json:"total_payments"`
	CompletedPayments   int64           `json:"completed_payments"`
	FailedPayments      int64           `json:"failed_payments"`
	PendingApprovals    int64           `json:"pending_approvals"`
	TotalPaymentVolume  decimal.Decimal `json:"total_payment_volume"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	OpenFraudAlerts     int64           `json:"open_fraud_alerts"`
	ActiveProcurements  int64           `json:"active_procurements"`
	PendingPurchaseReqs int64           `json:"pending_purchase_requests"`
}
