package implementation

import (
	"context"
	"errors"
	"time"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/mapper"
	"procureflow-be/internal/model"
	"procureflow-be/internal/repository/contract"
	"procureflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *entity.Payment) error {
	m := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*payment = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) Update(ctx context.Context, payment *entity.Payment) error {
	m := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*payment = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Payment{}).Error
}

func (r *PaymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	var m model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindOneForUpdate(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var m model.Payment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var models []*model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *PaymentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Payment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PaymentRepositoryImpl) SumAmount(ctx context.Context, specs ...specification.Specification) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Payment{}), specs...)
	if err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *PaymentRepositoryImpl) CountRecentByPayee(ctx context.Context, payee string, after time.Time, excludeId uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("payee_name = ? AND created_at > ? AND id <> ?", payee, after, excludeId).
		Count(&count).Error
	return int(count), err
}

type FraudAlertRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewFraudAlertRepository(db *gorm.DB) contract.FraudAlertRepository {
	return &FraudAlertRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *FraudAlertRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FraudAlertRepositoryImpl) Create(ctx context.Context, alert *entity.FraudAlert) error {
	m := r.mapper.FraudAlertToModel(alert)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*alert = *r.mapper.FraudAlertToEntity(m)
	return nil
}

func (r *FraudAlertRepositoryImpl) Update(ctx context.Context, alert *entity.FraudAlert) error {
	m := r.mapper.FraudAlertToModel(alert)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*alert = *r.mapper.FraudAlertToEntity(m)
	return nil
}

func (r *FraudAlertRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FraudAlert, error) {
	var m model.FraudAlert
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.FraudAlertToEntity(&m), nil
}

func (r *FraudAlertRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FraudAlert, error) {
	var models []*model.FraudAlert
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.FraudAlertsToEntities(models), nil
}

func (r *FraudAlertRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.FraudAlert{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
