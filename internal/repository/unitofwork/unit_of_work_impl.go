package unitofwork

import (
	"context"
	"fmt"

	"procureflow-be/internal/repository/contract"
	"procureflow-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RoleRepository() contract.RoleRepository {
	return implementation.NewRoleRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PermissionRepository() contract.PermissionRepository {
	return implementation.NewPermissionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PaymentRepository() contract.PaymentRepository {
	return implementation.NewPaymentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FraudAlertRepository() contract.FraudAlertRepository {
	return implementation.NewFraudAlertRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AuditLogRepository() contract.AuditLogRepository {
	return implementation.NewAuditLogRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProcurementRepository() contract.ProcurementRepository {
	return implementation.NewProcurementRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PurchaseRequestRepository() contract.PurchaseRequestRepository {
	return implementation.NewPurchaseRequestRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RevenueRepository() contract.RevenueRepository {
	return implementation.NewRevenueRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NotificationRepository() contract.NotificationRepository {
	return implementation.NewNotificationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AttachmentRepository() contract.AttachmentRepository {
	return implementation.NewAttachmentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SequenceRepository() contract.SequenceRepository {
	return implementation.NewSequenceRepository(u.getDB())
}
