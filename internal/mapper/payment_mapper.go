package mapper

import (
	"procureflow-be/internal/entity"
	"procureflow-be/internal/model"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:            p.Id,
		PaymentNumber: p.PaymentNumber,
		PayeeName:     p.PayeeName,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Method:        entity.PaymentMethod(p.Method),
		Status:        entity.PaymentStatus(p.Status),
		Description:   p.Description,
		ScheduledDate: p.ScheduledDate,
		ProcessedAt:   p.ProcessedAt,
		TransactionId: p.TransactionId,
		FailureReason: p.FailureReason,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
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
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToEntities(payments []*model.Payment) []*entity.Payment {
	entities := make([]*entity.Payment, len(payments))
	for i, p := range payments {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PaymentMapper) FraudAlertToEntity(a *model.FraudAlert) *entity.FraudAlert {
	if a == nil {
		return nil
	}
	return &entity.FraudAlert{
		Id:          a.Id,
		PaymentId:   a.PaymentId,
		Severity:    a.Severity,
		Description: a.Description,
		Status:      entity.FraudAlertStatus(a.Status),
		ReviewedBy:  a.ReviewedBy,
		ReviewedAt:  a.ReviewedAt,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *PaymentMapper) FraudAlertToModel(a *entity.FraudAlert) *model.FraudAlert {
	if a == nil {
		return nil
	}
	return &model.FraudAlert{
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

func (m *PaymentMapper) FraudAlertsToEntities(alerts []*model.FraudAlert) []*entity.FraudAlert {
	entities := make([]*entity.FraudAlert, len(alerts))
	for i, a := range alerts {
		entities[i] = m.FraudAlertToEntity(a)
	}
	return entities
}
