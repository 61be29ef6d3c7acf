package unitofwork

import (
	"context"

	"procureflow-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to a single transaction. Services
// construct one per operation through a factory so concurrent requests never
// share transaction state.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	RoleRepository() contract.RoleRepository
	PermissionRepository() contract.PermissionRepository
	PaymentRepository() contract.PaymentRepository
	FraudAlertRepository() contract.FraudAlertRepository
	AuditLogRepository() contract.AuditLogRepository
	ProcurementRepository() contract.ProcurementRepository
	PurchaseRequestRepository() contract.PurchaseRequestRepository
	RevenueRepository() contract.RevenueRepository
	NotificationRepository() contract.NotificationRepository
	AttachmentRepository() contract.AttachmentRepository
	SequenceRepository() contract.SequenceRepository
}
