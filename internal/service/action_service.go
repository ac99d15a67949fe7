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

type IActionService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateActionRequest) (*dto.ActionResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateActionRequest) (*dto.ActionResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ActionResponse, error)
}

type actionService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewActionService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) IActionService {
	return &actionService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *actionService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateActionRequest) (*dto.ActionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	action := entity.Action{
		Id:          uuid.New(),
		UserId:      userId,
		Title:       strings.TrimSpace(req.Title),
		IsRecurring: req.IsRecurring,
		IsCompleted: req.IsCompleted,
		CreatedAt:   time.Now(),
	}

	if err := uow.ActionRepository().Create(ctx, &action); err != nil {
		return nil, err
	}

	s.requestIndexing(ctx, userId, action.Id)

	return actionToResponse(&action), nil
}

// Update applies only the fields present in the request. Completion
// toggles re-index the action so its canonical text stays accurate.
func (s *actionService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateActionRequest) (*dto.ActionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	action, err := uow.ActionRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if action == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Action not found")
	}

	if req.Title != nil {
		action.Title = strings.TrimSpace(*req.Title)
	}
	if req.IsRecurring != nil {
		action.IsRecurring = *req.IsRecurring
	}
	if req.IsCompleted != nil {
		action.IsCompleted = *req.IsCompleted
	}
	now := time.Now()
	action.UpdatedAt = &now

	if err := uow.ActionRepository().Update(ctx, action); err != nil {
		return nil, err
	}

	s.requestIndexing(ctx, userId, action.Id)

	return actionToResponse(action), nil
}

func (s *actionService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	action, err := uow.ActionRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if action == nil {
		return fiber.NewError(fiber.StatusNotFound, "Action not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ActionRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.EmbeddingRepository().DeleteBySource(ctx, userId, entity.SourceAction, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *actionService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ActionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	actions, err := uow.ActionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.ActionResponse, 0, len(actions))
	for _, a := range actions {
		resp = append(resp, actionToResponse(a))
	}
	return resp, nil
}

func (s *actionService) requestIndexing(ctx context.Context, userId uuid.UUID, id uuid.UUID) {
	payload := dto.EmbedVaultItemMessage{
		UserId:   userId,
		Source:   string(entity.SourceAction),
		SourceId: id,
	}
	msgJson, err := json.Marshal(payload)
	if err == nil {
		err = s.publisherService.Publish(ctx, msgJson)
	}
	if err != nil {
		s.logger.Warn("ACTION", "Failed to queue action for indexing", map[string]interface{}{
			"action_id": id,
			"error":     err.Error(),
		})
	}
}

func actionToResponse(action *entity.Action) *dto.ActionResponse {
	return &dto.ActionResponse{
		Id:          action.Id,
		Title:       action.Title,
		IsRecurring: action.IsRecurring,
		IsCompleted: action.IsCompleted,
		CreatedAt:   action.CreatedAt,
	}
}
