package service

import (
	"context"
	"encoding/json"
	"time"

	"averin-be/internal/dto"
	"averin-be/internal/entity"
	"averin-be/internal/pkg/logger"
	"averin-be/internal/repository/specification"
	"averin-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAttachmentService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAttachmentRequest) (*dto.AttachmentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, userId uuid.UUID) ([]*dto.AttachmentResponse, error)
}

type attachmentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewAttachmentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IAttachmentService {
	return &attachmentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *attachmentService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateAttachmentRequest) (*dto.AttachmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contentType := req.ContentType
	if contentType == "" {
		contentType = "text"
	}

	attachment := entity.Attachment{
		Id:           uuid.New(),
		UserId:       userId,
		Name:         req.Name,
		ContentType:  contentType,
		Content:      req.Content,
		OriginalSize: req.OriginalSize,
		Metadata:     req.Metadata,
		CreatedAt:    time.Now(),
	}

	if err := uow.AttachmentRepository().Create(ctx, &attachment); err != nil {
		return nil, err
	}

	s.requestIndexing(ctx, userId, attachment.Id)

	return attachmentToResponse(&attachment), nil
}

func (s *attachmentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	attachment, err := uow.AttachmentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if attachment == nil {
		return fiber.NewError(fiber.StatusNotFound, "Attachment not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.AttachmentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.EmbeddingRepository().DeleteBySource(ctx, userId, entity.SourceAttachment, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *attachmentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.AttachmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	attachments, err := uow.AttachmentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		resp = append(resp, attachmentToResponse(a))
	}
	return resp, nil
}

func (s *attachmentService) requestIndexing(ctx context.Context, userId uuid.UUID, id uuid.UUID) {
	payload := dto.EmbedVaultItemMessage{
		UserId:   userId,
		Source:   string(entity.SourceAttachment),
		SourceId: id,
	}
	msgJson, err := json.Marshal(payload)
	if err == nil {
		err = s.publisherService.Publish(ctx, msgJson)
	}
	if err != nil {
		s.logger.Warn("ATTACHMENT", "Failed to queue attachment for indexing", map[string]interface{}{
			"attachment_id": id,
			"error":         err.Error(),
		})
	}
}

func attachmentToResponse(attachment *entity.Attachment) *dto.AttachmentResponse {
	return &dto.AttachmentResponse{
		Id:           attachment.Id,
		Name:         attachment.Name,
		ContentType:  attachment.ContentType,
		Content:      attachment.Content,
		OriginalSize: attachment.OriginalSize,
		Metadata:     attachment.Metadata,
		CreatedAt:    attachment.CreatedAt,
	}
}
