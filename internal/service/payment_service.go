package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/internal/pkg/logger"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"
	"procureflow-be/pkg/events"
	"procureflow-be/pkg/settlement"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettledTopic carries post-settlement messages to the fraud monitor.
const SettledTopic = "payments.settled"

// PaymentSettledMessage is the watermill payload published after every
// settlement attempt, successful or not.
type PaymentSettledMessage struct {
	PaymentId uuid.UUID       `json:"payment_id"`
	Payee     string          `json:"payee"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
}

// IEventPublisher is the slice of the NATS publisher the services need.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IPaymentService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error)
	List(ctx context.Context, query *dto.ListPaymentsQuery) (*dto.PaymentListResponse, error)
	Update(ctx context.Context, id uuid.UUID, userId uuid.UUID, req *dto.UpdatePaymentRequest) (*dto.PaymentResponse, error)
	Approve(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*dto.PaymentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*dto.PaymentResponse, error)
	Process(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*dto.ProcessPaymentResponse, error)
	CheckStatus(ctx context.Context, id uuid.UUID) (*settlement.Status, error)
	GetBalances(ctx context.Context) (map[string]*settlement.Balance, error)
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	registry   *settlement.Registry
	publisher  IEventPublisher
	bus        message.Publisher
	logger     logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	registry *settlement.Registry,
	publisher IEventPublisher,
	bus message.Publisher,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory: uowFactory,
		registry:   registry,
		publisher:  publisher,
		bus:        bus,
		logger:     log,
	}
}

func (s *paymentService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperr.ErrValidation)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	year := time.Now().Year()
	seq, err := uow.SequenceRepository().Next(ctx, "PAY", year)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	payment := &entity.Payment{
		Id:            uuid.New(),
		PaymentNumber: fmt.Sprintf("PAY-%d-%04d", year, seq),
		PayeeName:     req.PayeeName,
		Amount:        req.Amount,
		Currency:      currency,
		Method:        entity.PaymentMethod(req.Method),
		Status:        entity.PaymentStatusPendingApproval,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		CreatedBy:     userId,
	}
	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, uow, userId, entity.AuditActionCreate, payment.Id, map[string]interface{}{
		"payment_number": payment.PaymentNumber,
		"payee":          payment.PayeeName,
		"amount":         payment.Amount.String(),
		"method":         string(payment.Method),
	})

	return toPaymentResponse(payment), nil
}

func (s *paymentService) Get(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperr.ErrNotFound
	}
	return toPaymentResponse(payment), nil
}

func (s *paymentService) List(ctx context.Context, query *dto.ListPaymentsQuery) (*dto.PaymentListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if query.Status != "" {
		specs = append(specs, specification.Filter("status", query.Status))
	}
	if query.Payee != "" {
		specs = append(specs, specification.Search{Field: "payee_name", Query: query.Payee})
	}

	total, err := uow.PaymentRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: query.Offset},
	)

	payments, err := uow.PaymentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.PaymentListResponse{
		Payments: make([]dto.PaymentResponse, len(payments)),
		Total:    total,
	}
	for i, p := range payments {
		res.Payments[i] = *toPaymentResponse(p)
	}
	return res, nil
}

func (s *paymentService) Update(ctx context.Context, id uuid.UUID, userId uuid.UUID, req *dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperr.ErrNotFound
	}
	// Only drafts awaiting approval may be edited.
	if payment.Status != entity.PaymentStatusPendingApproval {
		return nil, fmt.Errorf("%w: payment is %s", apperr.ErrInvalidState, payment.Status)
	}

	changes := map[string]interface{}{}
	if req.PayeeName != nil {
		changes["payee_name"] = map[string]interface{}{"from": payment.PayeeName, "to": *req.PayeeName}
		payment.PayeeName = *req.PayeeName
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperr.ErrValidation)
		}
		changes["amount"] = map[string]interface{}{"from": payment.Amount.String(), "to": req.Amount.String()}
		payment.Amount = *req.Amount
	}
	if req.Description != nil {
		payment.Description = *req.Description
	}
	if req.ScheduledDate != nil {
		payment.ScheduledDate = req.ScheduledDate
	}

	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, uow, userId, entity.AuditActionUpdate, payment.Id, changes)
	return toPaymentResponse(payment), nil
}

func (s *paymentService) Approve(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperr.ErrNotFound
	}
	if payment.Status != entity.PaymentStatusPendingApproval {
		return nil, fmt.Errorf("%w: payment is %s", apperr.ErrInvalidState, payment.Status)
	}

	payment.Status = entity.PaymentStatusScheduled
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, uow, userId, entity.AuditActionApprove, payment.Id, map[string]interface{}{
		"status": map[string]interface{}{"from": "pending_approval", "to": "scheduled"},
	})

	s.publishEvent(ctx, events.TypePaymentApproved, map[string]interface{}{
		"user_id":        payment.CreatedBy.String(),
		"payment_id":     payment.Id.String(),
		"payment_number": payment.PaymentNumber,
		"payee_name":     payment.PayeeName,
		"amount":         payment.Amount.String(),
	})

	return toPaymentResponse(payment), nil
}

func (s *paymentService) Cancel(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperr.ErrNotFound
	}
	if payment.Status != entity.PaymentStatusPendingApproval && payment.Status != entity.PaymentStatusScheduled {
		return nil, fmt.Errorf("%w: payment is %s", apperr.ErrInvalidState, payment.Status)
	}

	prior := payment.Status
	payment.Status = entity.PaymentStatusCancelled
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, uow, userId, entity.AuditActionUpdate, payment.Id, map[string]interface{}{
		"status": map[string]interface{}{"from": string(prior), "to": "cancelled"},
	})
	return toPaymentResponse(payment), nil
}

// Process settles an approved payment through its rail. The row lock plus
// status precondition serializes concurrent attempts: the second caller
// blocks on the lock, then sees a non-scheduled status and gets
// ErrInvalidState with no second settlement.
func (s *paymentService) Process(ctx context.Context, id uuid.UUID, userId uuid.UUID) (*dto.ProcessPaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Resolve the adapter before touching the database so an unmapped
	// method leaves no trace: no status change, no audit row.
	peek, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if peek == nil {
		return nil, apperr.ErrNotFound
	}
	adapter, err := s.registry.Resolve(string(peek.Method))
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		// No-op after a successful Commit.
		_ = uow.Rollback()
	}()

	payment, err := uow.PaymentRepository().FindOneForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperr.ErrNotFound
	}
	if !payment.Status.CanProcess() {
		return nil, fmt.Errorf("%w: payment is %s", apperr.ErrInvalidState, payment.Status)
	}

	prior := payment.Status
	payment.Status = entity.PaymentStatusProcessing
	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	result, err := adapter.Process(ctx, settlement.Request{
		PaymentID: payment.Id.String(),
		Payee:     payment.PayeeName,
		Reference: payment.PaymentNumber,
		Amount:    payment.Amount,
	})
	if err != nil {
		// Transport-level failure: record the payment as failed so it does
		// not stay stuck in processing.
		reason := err.Error()
		payment.Status = entity.PaymentStatusFailed
		payment.FailureReason = &reason
		result = &settlement.Result{Success: false, Message: reason}
	} else if result.Success {
		now := time.Now()
		payment.Status = entity.PaymentStatusCompleted
		payment.ProcessedAt = &now
		payment.TransactionId = &result.TransactionID
		payment.FailureReason = nil
	} else {
		payment.Status = entity.PaymentStatusFailed
		payment.FailureReason = &result.Message
	}

	if err := uow.PaymentRepository().Update(ctx, payment); err != nil {
		return nil, err
	}

	auditChanges := map[string]interface{}{
		"status": map[string]interface{}{"from": string(prior), "to": string(payment.Status)},
	}
	if payment.TransactionId != nil {
		auditChanges["transaction_id"] = *payment.TransactionId
	}
	if payment.FailureReason != nil {
		auditChanges["failure_reason"] = *payment.FailureReason
	}
	uid := userId
	if err := uow.AuditLogRepository().Create(ctx, &entity.AuditLog{
		Id:           uuid.New(),
		UserId:       &uid,
		Action:       entity.AuditActionProcess,
		ResourceType: "payment",
		ResourceId:   &payment.Id,
		Changes:      auditChanges,
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.afterSettlement(ctx, payment)

	return &dto.ProcessPaymentResponse{
		Payment: *toPaymentResponse(payment),
		Message: result.Message,
	}, nil
}

// afterSettlement fans out the committed outcome: a domain event for
// notifications and a bus message for the fraud monitor. Both are
// best-effort; the settlement itself is already durable.
func (s *paymentService) afterSettlement(ctx context.Context, payment *entity.Payment) {
	eventType := events.TypePaymentCompleted
	if payment.Status == entity.PaymentStatusFailed {
		eventType = events.TypePaymentFailed
	}
	payload := map[string]interface{}{
		"user_id":        payment.CreatedBy.String(),
		"payment_id":     payment.Id.String(),
		"payment_number": payment.PaymentNumber,
		"payee_name":     payment.PayeeName,
		"amount":         payment.Amount.String(),
		"status":         string(payment.Status),
	}
	if payment.FailureReason != nil {
		payload["failure_reason"] = *payment.FailureReason
	}
	s.publishEvent(ctx, eventType, payload)

	if s.bus == nil {
		return
	}
	busPayload, err := json.Marshal(PaymentSettledMessage{
		PaymentId: payment.Id,
		Payee:     payment.PayeeName,
		Amount:    payment.Amount,
		Status:    string(payment.Status),
	})
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), busPayload)
	if err := s.bus.Publish(SettledTopic, msg); err != nil {
		s.logger.Error("Payment", "Failed to publish settlement message", map[string]interface{}{
			"error":      err,
			"payment_id": payment.Id.String(),
		})
	}
}

func (s *paymentService) CheckStatus(ctx context.Context, id uuid.UUID) (*settlement.Status, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperr.ErrNotFound
	}
	if payment.TransactionId == nil {
		return nil, fmt.Errorf("%w: payment has not been processed", apperr.ErrInvalidState)
	}

	adapter, err := s.registry.Resolve(string(payment.Method))
	if err != nil {
		return nil, err
	}
	return adapter.CheckStatus(ctx, *payment.TransactionId)
}

func (s *paymentService) GetBalances(ctx context.Context) (map[string]*settlement.Balance, error) {
	balances := make(map[string]*settlement.Balance)
	for _, method := range s.registry.Methods() {
		adapter, err := s.registry.Resolve(method)
		if err != nil {
			continue
		}
		balance, err := adapter.GetBalance(ctx)
		if err != nil {
			s.logger.Warn("Payment", "Balance check failed", map[string]interface{}{
				"method": method,
				"error":  err.Error(),
			})
			continue
		}
		balances[method] = balance
	}
	return balances, nil
}

func (s *paymentService) recordAudit(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, action string, paymentId uuid.UUID, changes map[string]interface{}) {
	uid := userId
	pid := paymentId
	if err := uow.AuditLogRepository().Create(ctx, &entity.AuditLog{
		Id:           uuid.New(),
		UserId:       &uid,
		Action:       action,
		ResourceType: "payment",
		ResourceId:   &pid,
		Changes:      changes,
	}); err != nil {
		s.logger.Error("Payment", "Failed to record audit log", map[string]interface{}{"error": err})
	}
}

func (s *paymentService) publishEvent(ctx context.Context, eventType string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, payload)); err != nil {
		s.logger.Error("Payment", "Failed to publish event", map[string]interface{}{
			"error": err,
			"type":  eventType,
		})
	}
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		Id:            p.Id,
		PaymentNumber: p.PaymentNumber,
		PayeeName:     p.PayeeName,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        string(p.Method),
		Status:        string(p.Status),
		Description:   p.Description,
		ScheduledDate: p.ScheduledDate,
		ProcessedAt:   p.ProcessedAt,
		TransactionId: p.TransactionId,
		FailureReason: p.FailureReason,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
	}
}
