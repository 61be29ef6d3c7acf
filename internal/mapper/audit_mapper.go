package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"procureflow-be/internal/entity"
	"procureflow-be/internal/model"
)

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) ToEntity(a *model.AuditLog) *entity.AuditLog {
	if a == nil {
		return nil
	}
	var changes map[string]interface{}
	if len(a.Changes) > 0 {
		// Malformed JSON leaves changes nil rather than failing the read.
		_ = json.Unmarshal(a.Changes, &changes)
	}
	return &entity.AuditLog{
		Id:           a.Id,
		UserId:       a.UserId,
		Action:       a.Action,
		ResourceType: a.ResourceType,
		ResourceId:   a.ResourceId,
		Changes:      changes,
		IpAddress:    a.IpAddress,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *AuditMapper) ToModel(a *entity.AuditLog) *model.AuditLog {
	if a == nil {
		return nil
	}
	var changes datatypes.JSON
	if a.Changes != nil {
		if raw, err := json.Marshal(a.Changes); err == nil {
			changes = raw
		}
	}
	return &model.AuditLog{
		Id:           a.Id,
		UserId:       a.UserId,
		Action:       a.Action,
		ResourceType: a.ResourceType,
		ResourceId:   a.ResourceId,
		Changes:      changes,
		IpAddress:    a.IpAddress,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *AuditMapper) ToEntities(logs []*model.AuditLog) []*entity.AuditLog {
	entities := make([]*entity.AuditLog, len(logs))
	for i, a := range logs {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
