package mapper

import (
	"procureflow-be/internal/entity"
	"procureflow-be/internal/model"
)

type AttachmentMapper struct{}

func NewAttachmentMapper() *AttachmentMapper {
	return &AttachmentMapper{}
}

func (m *AttachmentMapper) ToEntity(a *model.Attachment) *entity.Attachment {
	if a == nil {
		return nil
	}
	return &entity.Attachment{
		Id:           a.Id,
		FileName:     a.FileName,
		StoragePath:  a.StoragePath,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		ResourceType: a.ResourceType,
		ResourceId:   a.ResourceId,
		UploadedBy:   a.UploadedBy,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *AttachmentMapper) ToModel(a *entity.Attachment) *model.Attachment {
	if a == nil {
		return nil
	}
	return &model.Attachment{
		Id:           a.Id,
		FileName:     a.FileName,
		StoragePath:  a.StoragePath,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		ResourceType: a.ResourceType,
		ResourceId:   a.ResourceId,
		UploadedBy:   a.UploadedBy,
		CreatedAt:    a.CreatedAt,
	}
}

func (m *AttachmentMapper) ToEntities(items []*model.Attachment) []*entity.Attachment {
	entities := make([]*entity.Attachment, len(items))
	for i, a := range items {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
