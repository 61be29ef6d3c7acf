package service

import (
	"context"
	"fmt"
	"strings"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/logger"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"
	"procureflow-be/pkg/events"
	pktNats "procureflow-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.Notification)
	Broadcast(notification entity.Notification)
}

type INotificationService interface {
	Start()
	List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// notificationTemplate declares how an event type renders into an inbox
// entry. Placeholders like {payment_number} are filled from the payload.
type notificationTemplate struct {
	Title     string
	Message   string
	Type      entity.NotificationType
	Broadcast bool
}

var notificationTemplates = map[string]notificationTemplate{
	events.TypePaymentCompleted: {
		Title:   "Payment completed",
		Message: "Payment {payment_number} to {payee_name} settled successfully.",
		Type:    entity.NotificationTypeSuccess,
	},
	events.TypePaymentFailed: {
		Title:   "Payment failed",
		Message: "Payment {payment_number} to {payee_name} failed: {failure_reason}",
		Type:    entity.NotificationTypeError,
	},
	events.TypePaymentApproved: {
		Title:   "Payment approved",
		Message: "Payment {payment_number} was approved and scheduled for settlement.",
		Type:    entity.NotificationTypeInfo,
	},
	events.TypePurchaseSubmitted: {
		Title:   "Purchase request submitted",
		Message: "Purchase request {request_number} ({title}) is awaiting a decision.",
		Type:    entity.NotificationTypeInfo,
	},
	events.TypePurchaseDecided: {
		Title:   "Purchase request decided",
		Message: "Purchase request {request_number} is now {status}.",
		Type:    entity.NotificationTypeInfo,
	},
	events.TypeFraudAlertRaised: {
		Title:     "Fraud alert",
		Message:   "{severity} severity alert: {message}",
		Type:      entity.NotificationTypeWarning,
		Broadcast: true,
	},
}

// Start begins listening to the event bus.
func (s *notificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	tmpl, ok := notificationTemplates[event.EventType()]
	if !ok {
		// Unknown event types are not inbox-worthy; ack and move on.
		return nil
	}

	notif := s.buildNotification(tmpl, event)

	// Broadcast types are push-only: every connected client sees them, but
	// we do not fan out a row per user.
	if tmpl.Broadcast {
		if s.delivery != nil {
			s.delivery.Broadcast(notif)
		}
		return nil
	}

	uidStr, ok := event.Payload()["user_id"].(string)
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("No user_id in payload for event %s", event.EventType()), nil)
		return nil
	}
	userId, err := uuid.Parse(uidStr)
	if err != nil {
		return nil
	}
	notif.UserId = userId

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userId), map[string]interface{}{"error": err})
		return err
	}

	if s.delivery != nil {
		s.delivery.Send(userId, notif)
	}
	return nil
}

func (s *notificationService) buildNotification(tmpl notificationTemplate, event events.Event) entity.Notification {
	msg := tmpl.Message
	for k, v := range event.Payload() {
		placeholder := fmt.Sprintf("{%s}", k)
		msg = strings.ReplaceAll(msg, placeholder, fmt.Sprintf("%v", v))
	}

	return entity.Notification{
		Id:      uuid.New(),
		Title:   tmpl.Title,
		Message: msg,
		Type:    tmpl.Type,
	}
}

func (s *notificationService) List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.NotificationListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.Filter("user_id", userId)}

	total, err := uow.NotificationRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}
	unread, err := uow.NotificationRepository().CountUnread(ctx, userId)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)

	items, err := uow.NotificationRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, len(items)),
		UnreadCount:   unread,
		Total:         total,
	}
	for i, n := range items {
		res.Notifications[i] = dto.NotificationResponse{
			Id:        n.Id,
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			Read:      n.Read,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		}
	}
	return res, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, id, userId)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllRead(ctx, userId)
}
