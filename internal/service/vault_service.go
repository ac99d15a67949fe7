package service

import (
	"context"
	"fmt"
	"time"

	"averin-be/internal/dto"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

type IVaultService interface {
	Summary(ctx context.Context, userId uuid.UUID) (*dto.VaultSummaryResponse, error)
}

// vaultService aggregates all four item kinds into one summary. The
// four list calls run concurrently and any single failure fails the
// whole summary. Results are cached briefly per user to absorb bursts
// from dashboard refreshes.
type vaultService struct {
	noteService       INoteService
	linkService       ILinkService
	actionService     IActionService
	attachmentService IAttachmentService
	cache             *gocache.Cache
}

const summaryCacheTTL = 30 * time.Second

func NewVaultService(
	noteService INoteService,
	linkService ILinkService,
	actionService IActionService,
	attachmentService IAttachmentService,
) IVaultService {
	return &vaultService{
		noteService:       noteService,
		linkService:       linkService,
		actionService:     actionService,
		attachmentService: attachmentService,
		cache:             gocache.New(summaryCacheTTL, time.Minute),
	}
}

func (s *vaultService) Summary(ctx context.Context, userId uuid.UUID) (*dto.VaultSummaryResponse, error) {
	cacheKey := fmt.Sprintf("vault_summary:%s", userId)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*dto.VaultSummaryResponse), nil
	}

	summary := &dto.VaultSummaryResponse{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		notes, err := s.noteService.List(gctx, userId)
		if err != nil {
			return err
		}
		summary.Notes = derefAll(notes)
		return nil
	})
	g.Go(func() error {
		links, err := s.linkService.List(gctx, userId)
		if err != nil {
			return err
		}
		summary.Links = derefAll(links)
		return nil
	})
	g.Go(func() error {
		actions, err := s.actionService.List(gctx, userId)
		if err != nil {
			return err
		}
		summary.Actions = derefAll(actions)
		return nil
	})
	g.Go(func() error {
		attachments, err := s.attachmentService.List(gctx, userId)
		if err != nil {
			return err
		}
		summary.Attachments = derefAll(attachments)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, summary, summaryCacheTTL)
	return summary, nil
}

func derefAll[T any](in []*T) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}
	return out
}
