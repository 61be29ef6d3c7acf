package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"procureflow-be/internal/dto"
	"procureflow-be/internal/entity"
	"procureflow-be/internal/pkg/apperr"
	"procureflow-be/internal/pkg/logger"
	"procureflow-be/internal/repository/specification"
	"procureflow-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// maxAttachmentSize caps uploads at 10 MiB.
const maxAttachmentSize = 10 << 20

var allowedAttachmentResources = map[string]bool{
	"payment":          true,
	"procurement":      true,
	"purchase_request": true,
	"revenue":          true,
}

type IAttachmentService interface {
	Upload(ctx context.Context, userId uuid.UUID, resourceType string, resourceId uuid.UUID, fileName, contentType string, size int64, src io.Reader) (*dto.AttachmentResponse, error)
	List(ctx context.Context, resourceType string, resourceId uuid.UUID) ([]dto.AttachmentResponse, error)
	// Open returns the attachment metadata and a reader over its content.
	// The caller owns closing the reader.
	Open(ctx context.Context, id uuid.UUID) (*dto.AttachmentResponse, io.ReadCloser, error)
	Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
}

type attachmentService struct {
	uowFactory unitofwork.RepositoryFactory
	audit      IAuditService
	basePath   string
	logger     logger.ILogger
}

func NewAttachmentService(uowFactory unitofwork.RepositoryFactory, audit IAuditService, basePath string, log logger.ILogger) IAttachmentService {
	return &attachmentService{
		uowFactory: uowFactory,
		audit:      audit,
		basePath:   basePath,
		logger:     log,
	}
}

func (s *attachmentService) Upload(ctx context.Context, userId uuid.UUID, resourceType string, resourceId uuid.UUID, fileName, contentType string, size int64, src io.Reader) (*dto.AttachmentResponse, error) {
	if !allowedAttachmentResources[resourceType] {
		return nil, fmt.Errorf("%w: unknown resource type %q", apperr.ErrValidation, resourceType)
	}
	if size <= 0 || size > maxAttachmentSize {
		return nil, fmt.Errorf("%w: file size must be between 1 byte and %d bytes", apperr.ErrValidation, maxAttachmentSize)
	}

	id := uuid.New()
	storagePath := filepath.Join(s.basePath, resourceType, id.String()+filepath.Ext(fileName))
	if err := os.MkdirAll(filepath.Dir(storagePath), 0o755); err != nil {
		return nil, err
	}

	dst, err := os.Create(storagePath)
	if err != nil {
		return nil, err
	}
	written, err := io.Copy(dst, io.LimitReader(src, maxAttachmentSize))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(storagePath)
		return nil, err
	}

	attachment := &entity.Attachment{
		Id:           id,
		FileName:     fileName,
		StoragePath:  storagePath,
		ContentType:  contentType,
		SizeBytes:    written,
		ResourceType: resourceType,
		ResourceId:   resourceId,
		UploadedBy:   userId,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AttachmentRepository().Create(ctx, attachment); err != nil {
		os.Remove(storagePath)
		return nil, err
	}

	s.audit.Record(ctx, &userId, entity.AuditActionCreate, "attachment", &attachment.Id, map[string]interface{}{
		"file_name":     fileName,
		"resource_type": resourceType,
		"resource_id":   resourceId.String(),
	})
	return toAttachmentResponse(attachment), nil
}

func (s *attachmentService) List(ctx context.Context, resourceType string, resourceId uuid.UUID) ([]dto.AttachmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	items, err := uow.AttachmentRepository().FindAll(ctx,
		specification.Filter("resource_type", resourceType),
		specification.Filter("resource_id", resourceId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	res := make([]dto.AttachmentResponse, len(items))
	for i, a := range items {
		res[i] = *toAttachmentResponse(a)
	}
	return res, nil
}

func (s *attachmentService) Open(ctx context.Context, id uuid.UUID) (*dto.AttachmentResponse, io.ReadCloser, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	attachment, err := uow.AttachmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, nil, err
	}
	if attachment == nil {
		return nil, nil, apperr.ErrNotFound
	}

	f, err := os.Open(attachment.StoragePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Error("Attachment", "File missing from storage", map[string]interface{}{
				"id":   id.String(),
				"path": attachment.StoragePath,
			})
			return nil, nil, apperr.ErrNotFound
		}
		return nil, nil, err
	}
	return toAttachmentResponse(attachment), f, nil
}

func (s *attachmentService) Delete(ctx context.Context, id uuid.UUID, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	attachment, err := uow.AttachmentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if attachment == nil {
		return apperr.ErrNotFound
	}

	if err := uow.AttachmentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := os.Remove(attachment.StoragePath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Attachment", "Failed to remove stored file", map[string]interface{}{
			"path":  attachment.StoragePath,
			"error": err.Error(),
		})
	}

	s.audit.Record(ctx, &userId, entity.AuditActionDelete, "attachment", &id, map[string]interface{}{
		"file_name": attachment.FileName,
	})
	return nil
}

func toAttachmentResponse(a *entity.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		Id:           a.Id,
		FileName:     a.FileName,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		ResourceType: a.ResourceType,
		ResourceId:   a.ResourceId,
		UploadedBy:   a.UploadedBy,
		CreatedAt:    a.CreatedAt,
	}
}
