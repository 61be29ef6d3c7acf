package implementation

import (
	"context"
	"errors"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/mapper"
	"procureflow-be/internal/model"
	"procureflow-be/internal/repository/contract"
	"procureflow-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProcurementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProcurementMapper
}

func NewProcurementRepository(db *gorm.DB) contract.ProcurementRepository {
	return &ProcurementRepositoryImpl{
		db:     db,
		mapper: mapper.NewProcurementMapper(),
	}
}

func (r *ProcurementRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProcurementRepositoryImpl) Create(ctx context.Context, procurement *entity.Procurement) error {
	m := r.mapper.ToModel(procurement)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*procurement = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProcurementRepositoryImpl) Update(ctx context.Context, procurement *entity.Procurement) error {
	m := r.mapper.ToModel(procurement)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*procurement = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProcurementRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Procurement{}).Error
}

func (r *ProcurementRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Procurement, error) {
	var m model.Procurement
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *ProcurementRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Procurement, error) {
	var models []*model.Procurement
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *ProcurementRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Procurement{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type PurchaseRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProcurementMapper
}

func NewPurchaseRequestRepository(db *gorm.DB) contract.PurchaseRequestRepository {
	return &PurchaseRequestRepositoryImpl{
		db:     db,
		mapper: mapper.NewProcurementMapper(),
	}
}

func (r *PurchaseRequestRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PurchaseRequestRepositoryImpl) Create(ctx context.Context, request *entity.PurchaseRequest) error {
	m := r.mapper.PurchaseRequestToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.PurchaseRequestToEntity(m)
	return nil
}

func (r *PurchaseRequestRepositoryImpl) Update(ctx context.Context, request *entity.PurchaseRequest) error {
	m := r.mapper.PurchaseRequestToModel(request)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.PurchaseRequestToEntity(m)
	return nil
}

func (r *PurchaseRequestRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PurchaseRequest{}).Error
}

func (r *PurchaseRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PurchaseRequest, error) {
	var m model.PurchaseRequest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.PurchaseRequestToEntity(&m), nil
}

func (r *PurchaseRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PurchaseRequest, error) {
	var models []*model.PurchaseRequest
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.PurchaseRequestsToEntities(models), nil
}

func (r *PurchaseRequestRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PurchaseRequest{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type RevenueRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProcurementMapper
}

func NewRevenueRepository(db *gorm.DB) contract.RevenueRepository {
	return &RevenueRepositoryImpl{
		db:     db,
		mapper: mapper.NewProcurementMapper(),
	}
}

func (r *RevenueRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RevenueRepositoryImpl) Create(ctx context.Context, revenue *entity.Revenue) error {
	m := r.mapper.RevenueToModel(revenue)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*revenue = *r.mapper.RevenueToEntity(m)
	return nil
}

func (r *RevenueRepositoryImpl) Update(ctx context.Context, revenue *entity.Revenue) error {
	m := r.mapper.RevenueToModel(revenue)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*revenue = *r.mapper.RevenueToEntity(m)
	return nil
}

func (r *RevenueRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Revenue{}).Error
}

func (r *RevenueRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Revenue, error) {
	var m model.Revenue
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.RevenueToEntity(&m), nil
}

func (r *RevenueRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Revenue, error) {
	var models []*model.Revenue
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.RevenuesToEntities(models), nil
}

func (r *RevenueRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Revenue{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RevenueRepositoryImpl) SumAmount(ctx context.Context, specs ...specification.Specification) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Revenue{}), specs...)
	if err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}
