package mapper

import (
	"procureflow-be/internal/entity"
	"procureflow-be/internal/model"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	return &entity.Notification{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Message:   n.Message,
		Type:      entity.NotificationType(n.Type),
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}
	return &model.Notification{
		Id:        n.Id,
		UserId:    n.UserId,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(items []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(items))
	for i, n := range items {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
