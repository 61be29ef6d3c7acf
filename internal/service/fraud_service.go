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
	"procureflow-be/internal/pkg/mailer"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"
	"procureflow-be/pkg/events"
	"procureflow-be/pkg/fraud"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// IFraudService runs the post-settlement monitoring pass and serves the
// alert review API.
type IFraudService interface {
	Start(ctx context.Context) error
	ListAlerts(ctx context.Context, query *dto.ListFraudAlertsQuery) (*dto.FraudAlertListResponse, error)
	GetAlert(ctx context.Context, id uuid.UUID) (*dto.FraudAlertResponse, error)
	ReviewAlert(ctx context.Context, id uuid.UUID, userId uuid.UUID, req *dto.ReviewFraudAlertRequest) (*dto.FraudAlertResponse, error)
}

type fraudService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber message.Subscriber
	publisher  IEventPublisher
	mailer     mailer.IEmailService
	alertEmail string
	logger     logger.ILogger
}

func NewFraudService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber message.Subscriber,
	publisher IEventPublisher,
	mail mailer.IEmailService,
	alertEmail string,
	log logger.ILogger,
) IFraudService {
	return &fraudService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		publisher:  publisher,
		mailer:     mail,
		alertEmail: alertEmail,
		logger:     log,
	}
}

// Start consumes settlement messages. Monitoring runs after the settlement
// transaction commits, so a rule failure can never block a payment.
func (s *fraudService) Start(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, SettledTopic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", SettledTopic, err)
	}

	go func() {
		for msg := range messages {
			if err := s.handleSettled(msg); err != nil {
				s.logger.Error("Fraud", "Settlement message handling failed", map[string]interface{}{
					"error": err,
				})
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}()

	s.logger.Info("Fraud", "Fraud monitor started", map[string]interface{}{"topic": SettledTopic})
	return nil
}

func (s *fraudService) handleSettled(msg *message.Message) error {
	var settled PaymentSettledMessage
	if err := json.Unmarshal(msg.Payload, &settled); err != nil {
		// Malformed payload will never parse; drop it instead of retrying.
		s.logger.Warn("Fraud", "Dropping malformed settlement message", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	ctx := context.Background()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	recent, err := uow.PaymentRepository().CountRecentByPayee(
		ctx, settled.Payee, time.Now().Add(-fraud.VelocityWindow), settled.PaymentId)
	if err != nil {
		return err
	}

	alerts := fraud.Evaluate(fraud.Payment{
		ID:     settled.PaymentId,
		Payee:  settled.Payee,
		Amount: settled.Amount,
	}, recent)

	for _, a := range alerts {
		paymentId := settled.PaymentId
		alert := &entity.FraudAlert{
			Id:          uuid.New(),
			PaymentId:   &paymentId,
			Severity:    string(a.Severity),
			Description: a.Description,
			Status:      entity.FraudAlertStatusOpen,
		}
		if err := uow.FraudAlertRepository().Create(ctx, alert); err != nil {
			return err
		}

		s.logger.Warn("Fraud", "Alert raised", map[string]interface{}{
			"payment_id": settled.PaymentId.String(),
			"severity":   string(a.Severity),
		})

		if s.publisher != nil {
			_ = s.publisher.Publish(ctx, events.NewEvent(events.TypeFraudAlertRaised, map[string]interface{}{
				"alert_id":   alert.Id.String(),
				"payment_id": settled.PaymentId.String(),
				"severity":   string(a.Severity),
				"message":    a.Description,
			}))
		}

		if s.mailer != nil && s.alertEmail != "" &&
			(a.Severity == fraud.SeverityHigh || a.Severity == fraud.SeverityCritical) {
			if err := s.mailer.SendFraudAlert(s.alertEmail, string(a.Severity), a.Description, settled.PaymentId.String()); err != nil {
				s.logger.Error("Fraud", "Alert email failed", map[string]interface{}{"error": err})
			}
		}
	}

	return nil
}

func (s *fraudService) ListAlerts(ctx context.Context, query *dto.ListFraudAlertsQuery) (*dto.FraudAlertListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if query.Severity != "" {
		specs = append(specs, specification.Filter("severity", query.Severity))
	}
	if query.Status != "" {
		specs = append(specs, specification.Filter("status", query.Status))
	}

	total, err := uow.FraudAlertRepository().Count(ctx, specs...)
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

	alerts, err := uow.FraudAlertRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.FraudAlertListResponse{
		Alerts: make([]dto.FraudAlertResponse, len(alerts)),
		Total:  total,
	}
	for i, a := range alerts {
		res.Alerts[i] = *toFraudAlertResponse(a)
	}
	return res, nil
}

func (s *fraudService) GetAlert(ctx context.Context, id uuid.UUID) (*dto.FraudAlertResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	alert, err := uow.FraudAlertRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, apperr.ErrNotFound
	}
	return toFraudAlertResponse(alert), nil
}

func (s *fraudService) ReviewAlert(ctx context.Context, id uuid.UUID, userId uuid.UUID, req *dto.ReviewFraudAlertRequest) (*dto.FraudAlertResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	alert, err := uow.FraudAlertRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, apperr.ErrNotFound
	}
	if alert.Status != entity.FraudAlertStatusOpen {
		return nil, fmt.Errorf("%w: alert already %s", apperr.ErrInvalidState, alert.Status)
	}

	now := time.Now()
	alert.Status = entity.FraudAlertStatus(req.Status)
	alert.ReviewedBy = &userId
	alert.ReviewedAt = &now
	if err := uow.FraudAlertRepository().Update(ctx, alert); err != nil {
		return nil, err
	}

	if err := uow.AuditLogRepository().Create(ctx, &entity.AuditLog{
		Id:           uuid.New(),
		UserId:       &userId,
		Action:       entity.AuditActionUpdate,
		ResourceType: "fraud_alert",
		ResourceId:   &alert.Id,
		Changes: map[string]interface{}{
			"status": map[string]interface{}{"from": "open", "to": req.Status},
		},
	}); err != nil {
		s.logger.Error("Fraud", "Failed to record audit log", map[string]interface{}{"error": err})
	}

	return toFraudAlertResponse(alert), nil
}

func toFraudAlertResponse(a *entity.FraudAlert) *dto.FraudAlertResponse {
	return &dto.FraudAlertResponse{
		Id:          a.Id,
		PaymentId:   a.PaymentId,
		Severity:    a.Severity,
		Description: a.Description,
		Status:      string(a.Status),
		ReviewedBy:  a.ReviewedBy,
		ReviewedAt:  a.ReviewedAt,
		CreatedAt:   a.CreatedAt,
	}
}
