package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"averin-be/internal/dto"
	"averin-be/internal/entity"
	"averin-be/internal/pkg/logger"
	"averin-be/internal/repository/specification"
	"averin-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ILinkService interface {
	CreateBulk(ctx context.Context, userId uuid.UUID, req *dto.CreateLinksRequest) (*dto.CreateLinksResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, userId uuid.UUID) ([]*dto.LinkResponse, error)
}

type linkService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewLinkService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) ILinkService {
	return &linkService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *linkService) CreateBulk(ctx context.Context, userId uuid.UUID, req *dto.CreateLinksRequest) (*dto.CreateLinksResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Blank urls are dropped rather than failing the whole batch; the
	// request only fails when nothing usable remains.
	now := time.Now()
	links := make([]*entity.Link, 0, len(req.Links))
	for _, item := range req.Links {
		if strings.TrimSpace(item.Url) == "" {
			continue
		}
		links = append(links, &entity.Link{
			Id:        uuid.New(),
			UserId:    userId,
			Url:       item.Url,
			Title:     item.Title,
			CreatedAt: now,
		})
	}
	if len(links) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No valid links provided")
	}

	saved, err := uow.LinkRepository().CreateBulk(ctx, links)
	if err != nil {
		return nil, err
	}

	resp := &dto.CreateLinksResponse{
		Links: make([]*dto.LinkResponse, 0, len(saved)),
		Count: len(saved),
	}
	for _, l := range saved {
		s.requestIndexing(ctx, userId, l.Id)
		resp.Links = append(resp.Links, linkToResponse(l))
	}

	return resp, nil
}

func (s *linkService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	link, err := uow.LinkRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if link == nil {
		return fiber.NewError(fiber.StatusNotFound, "Link not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.LinkRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.EmbeddingRepository().DeleteBySource(ctx, userId, entity.SourceLink, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *linkService) List(ctx context.Context, userId uuid.UUID) ([]*dto.LinkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	links, err := uow.LinkRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.LinkResponse, 0, len(links))
	for _, l := range links {
		resp = append(resp, linkToResponse(l))
	}
	return resp, nil
}

func (s *linkService) requestIndexing(ctx context.Context, userId uuid.UUID, id uuid.UUID) {
	payload := dto.EmbedVaultItemMessage{
		UserId:   userId,
		Source:   string(entity.SourceLink),
		SourceId: id,
	}
	msgJson, err := json.Marshal(payload)
	if err == nil {
		err = s.publisherService.Publish(ctx, msgJson)
	}
	if err != nil {
		s.logger.Warn("LINK", "Failed to queue link for indexing", map[string]interface{}{
			"link_id": id,
			"error":   err.Error(),
		})
	}
}

func linkToResponse(link *entity.Link) *dto.LinkResponse {
	return &dto.LinkResponse{
		Id:        link.Id,
		Url:       link.Url,
		Title:     link.Title,
		CreatedAt: link.CreatedAt,
	}
}
