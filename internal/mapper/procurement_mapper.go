package mapper

import (
	"procureflow-be/internal/entity"
	"procureflow-be/internal/model"
)

type ProcurementMapper struct{}

func NewProcurementMapper() *ProcurementMapper {
	return &ProcurementMapper{}
}

func (m *ProcurementMapper) ToEntity(p *model.Procurement) *entity.Procurement {
	if p == nil {
		return nil
	}
	return &entity.Procurement{
		Id:           p.Id,
		TenderNumber: p.TenderNumber,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Vendor:       p.Vendor,
		Amount:       p.Amount,
		Status:       entity.ProcurementStatus(p.Status),
		CreatedBy:    p.CreatedBy,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *ProcurementMapper) ToModel(p *entity.Procurement) *model.Procurement {
	if p == nil {
		return nil
	}
	return &model.Procurement{
		Id:           p.Id,
		TenderNumber: p.TenderNumber,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Vendor:       p.Vendor,
		Amount:       p.Amount,
		Status:       string(p.Status),
		CreatedBy:    p.CreatedBy,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *ProcurementMapper) ToEntities(items []*model.Procurement) []*entity.Procurement {
	entities := make([]*entity.Procurement, len(items))
	for i, p := range items {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *ProcurementMapper) PurchaseRequestToEntity(p *model.PurchaseRequest) *entity.PurchaseRequest {
	if p == nil {
		return nil
	}
	return &entity.PurchaseRequest{
		Id:            p.Id,
		RequestNumber: p.RequestNumber,
		Title:         p.Title,
		Description:   p.Description,
		Justification: p.Justification,
		Amount:        p.Amount,
		Status:        entity.PurchaseRequestStatus(p.Status),
		RequestedBy:   p.RequestedBy,
		DecidedBy:     p.DecidedBy,
		DecidedAt:     p.DecidedAt,
		DecisionNote:  p.DecisionNote,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *ProcurementMapper) PurchaseRequestToModel(p *entity.PurchaseRequest) *model.PurchaseRequest {
	if p == nil {
		return nil
	}
	return &model.PurchaseRequest{
		Id:            p.Id,
		RequestNumber: p.RequestNumber,
		Title:         p.Title,
		Description:   p.Description,
		Justification: p.Justification,
		Amount:        p.Amount,
		Status:        string(p.Status),
		RequestedBy:   p.RequestedBy,
		DecidedBy:     p.DecidedBy,
		DecidedAt:     p.DecidedAt,
		DecisionNote:  p.DecisionNote,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *ProcurementMapper) PurchaseRequestsToEntities(items []*model.PurchaseRequest) []*entity.PurchaseRequest {
	entities := make([]*entity.PurchaseRequest, len(items))
	for i, p := range items {
		entities[i] = m.PurchaseRequestToEntity(p)
	}
	return entities
}

func (m *ProcurementMapper) RevenueToEntity(r *model.Revenue) *entity.Revenue {
	if r == nil {
		return nil
	}
	return &entity.Revenue{
		Id:            r.Id,
		RevenueNumber: r.RevenueNumber,
		Source:        r.Source,
		Category:      r.Category,
		Amount:        r.Amount,
		Currency:      r.Currency,
		Description:   r.Description,
		ReceivedDate:  r.ReceivedDate,
		RecordedBy:    r.RecordedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (m *ProcurementMapper) RevenueToModel(r *entity.Revenue) *model.Revenue {
	if r == nil {
		return nil
	}
	return &model.Revenue{
		Id:            r.Id,
		RevenueNumber: r.RevenueNumber,
		Source:        r.Source,
		Category:      r.Category,
		Amount:        r.Amount,
		Currency:      r.Currency,
		Description:   r.Description,
		ReceivedDate:  r.ReceivedDate,
		RecordedBy:    r.RecordedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (m *ProcurementMapper) RevenuesToEntities(items []*model.Revenue) []*entity.Revenue {
	entities := make([]*entity.Revenue, len(items))
	for i, r := range items {
		entities[i] = m.RevenueToEntity(r)
	}
	return entities
}
