package service

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/logger"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"

	"github.com/patrickmn/go-cache"
)

const dashboardCacheKey = "analytics:dashboard"

type IAnalyticsService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	ExportPaymentsCSV(ctx context.Context, w io.Writer) error
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
	logger     logger.ILogger
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAnalyticsService {
	return &analyticsService{
		uowFactory: uowFactory,
		cache:      cache.New(30*time.Second, time.Minute),
		logger:     log,
	}
}

// Dashboard fans out several aggregate queries, so results are cached for
// a short window. Figures may lag reality by up to 30 seconds.
func (s *analyticsService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if cached, found := s.cache.Get(dashboardCacheKey); found {
		return cached.(*dto.DashboardResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	res := &dto.DashboardResponse{}

	var err error
	if res.TotalPayments, err = uow.PaymentRepository().Count(ctx); err != nil {
		return nil, err
	}
	if res.CompletedPayments, err = uow.PaymentRepository().Count(ctx,
		specification.Filter("status", string(entity.PaymentStatusCompleted))); err != nil {
		return nil, err
	}
	if res.FailedPayments, err = uow.PaymentRepository().Count(ctx,
		specification.Filter("status", string(entity.PaymentStatusFailed))); err != nil {
		return nil, err
	}
	if res.PendingApprovals, err = uow.PaymentRepository().Count(ctx,
		specification.Filter("status", string(entity.PaymentStatusPendingApproval))); err != nil {
		return nil, err
	}
	if res.TotalPaymentVolume, err = uow.PaymentRepository().SumAmount(ctx,
		specification.Filter("status", string(entity.PaymentStatusCompleted))); err != nil {
		return nil, err
	}
	if res.TotalRevenue, err = uow.RevenueRepository().SumAmount(ctx); err != nil {
		return nil, err
	}
	if res.OpenFraudAlerts, err = uow.FraudAlertRepository().Count(ctx,
		specification.Filter("status", string(entity.FraudAlertStatusOpen))); err != nil {
		return nil, err
	}
	if res.ActiveProcurements, err = uow.ProcurementRepository().Count(ctx,
		specification.In{Field: "status", Values: []interface{}{
			string(entity.ProcurementStatusTendering),
			string(entity.ProcurementStatusAwarded),
		}}); err != nil {
		return nil, err
	}
	if res.PendingPurchaseReqs, err = uow.PurchaseRequestRepository().Count(ctx,
		specification.Filter("status", string(entity.PurchaseRequestStatusPending))); err != nil {
		return nil, err
	}

	s.cache.Set(dashboardCacheKey, res, cache.DefaultExpiration)
	return res, nil
}

// ExportPaymentsCSV streams every payment as CSV, newest first.
func (s *analyticsService) ExportPaymentsCSV(ctx context.Context, w io.Writer) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payments, err := uow.PaymentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"payment_number", "payee_name", "amount", "currency", "method", "status", "transaction_id", "created_at",
	}); err != nil {
		return err
	}
	for _, p := range payments {
		txID := ""
		if p.TransactionId != nil {
			txID = *p.TransactionId
		}
		if err := cw.Write([]string{
			p.PaymentNumber,
			p.PayeeName,
			p.Amount.String(),
			p.Currency,
			string(p.Method),
			string(p.Status),
			txID,
			p.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
