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
	"averin-be/pkg/embedding"
	"averin-be/pkg/events"
	pktNats "averin-be/pkg/nats"
	"averin-be/pkg/rag/ingest"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
	Close()
}

// consumerService drains the embed topic and keeps the vector index in
// sync with vault writes. Indexing is strictly best-effort: a failure
// here never propagates back to the request that stored the item, it is
// Nacked for redelivery and reported on the event bus.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	pool              *ants.Pool
	logger            logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
	workers int,
	log logger.ILogger,
) (IConsumerService, error) {
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}

	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		pool:              pool,
		logger:            log,
	}, nil
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			m := msg
			if err := cs.pool.Submit(func() {
				cs.processMessage(ctx, m)
			}); err != nil {
				cs.logger.Error("CONSUMER", "Failed to submit message to worker pool", map[string]interface{}{
					"error": err.Error(),
				})
				m.Nack()
			}
		}
	}()

	return nil
}

func (cs *consumerService) Close() {
	cs.pool.Release()
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.EmbedVaultItemMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Malformed messages would fail forever, drop them.
		return
	}

	kind := entity.SourceKind(payload.Source)
	if !kind.Valid() {
		cs.logger.Error("CONSUMER", "Unknown source kind", map[string]interface{}{
			"source":    payload.Source,
			"source_id": payload.SourceId,
		})
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	content, found, err := cs.loadCanonicalContent(ctx, uow, payload.UserId, kind, payload.SourceId)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to load vault item", map[string]interface{}{
			"source":    payload.Source,
			"source_id": payload.SourceId,
			"error":     err.Error(),
		})
		cs.reportFailure(ctx, payload, err)
		msg.Nack()
		return
	}
	if !found {
		// Item deleted between publish and consume, nothing to index.
		msg.Ack()
		return
	}

	res, err := cs.embeddingProvider.Generate(content, embedding.TaskRetrievalDocument)
	if err != nil {
		cs.logger.Error("CONSUMER", "Failed to generate embedding", map[string]interface{}{
			"source":    payload.Source,
			"source_id": payload.SourceId,
			"error":     err.Error(),
		})
		cs.reportFailure(ctx, payload, err)
		msg.Nack()
		return
	}

	record := &entity.Embedding{
		Id:        uuid.New(),
		UserId:    payload.UserId,
		Source:    kind,
		SourceId:  payload.SourceId,
		Content:   content,
		Vector:    res.Embedding.Values,
		CreatedAt: time.Now(),
	}

	// Delete-then-insert inside one transaction so re-indexing the same
	// item never leaves the index empty or doubled.
	if err := uow.Begin(ctx); err != nil {
		cs.reportFailure(ctx, payload, err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.EmbeddingRepository().DeleteBySource(ctx, payload.UserId, kind, payload.SourceId); err != nil {
		cs.logger.Error("CONSUMER", "Failed to delete stale embedding", map[string]interface{}{
			"source_id": payload.SourceId,
			"error":     err.Error(),
		})
		cs.reportFailure(ctx, payload, err)
		msg.Nack()
		return
	}

	if err := uow.EmbeddingRepository().Create(ctx, record); err != nil {
		cs.logger.Error("CONSUMER", "Failed to store embedding", map[string]interface{}{
			"source_id": payload.SourceId,
			"error":     err.Error(),
		})
		cs.reportFailure(ctx, payload, err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		cs.reportFailure(ctx, payload, err)
		msg.Nack()
		return
	}

	cs.logger.Info("CONSUMER", "Vault item indexed", map[string]interface{}{
		"source":    payload.Source,
		"source_id": payload.SourceId,
	})

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeVaultItemIndexed,
			Data: map[string]interface{}{
				"user_id":   payload.UserId,
				"source":    payload.Source,
				"source_id": payload.SourceId,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("CONSUMER", "Failed to publish indexed event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}

// loadCanonicalContent reloads the item so the index always reflects the
// latest stored state, then renders its canonical text.
func (cs *consumerService) loadCanonicalContent(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	userId uuid.UUID,
	kind entity.SourceKind,
	sourceId uuid.UUID,
) (string, bool, error) {
	specs := []specification.Specification{
		specification.ByID{ID: sourceId},
		specification.UserOwnedBy{UserID: userId},
	}

	switch kind {
	case entity.SourceNote:
		note, err := uow.NoteRepository().FindOne(ctx, specs...)
		if err != nil || note == nil {
			return "", false, err
		}
		return ingest.CanonicalNote(note), true, nil
	case entity.SourceLink:
		link, err := uow.LinkRepository().FindOne(ctx, specs...)
		if err != nil || link == nil {
			return "", false, err
		}
		return ingest.CanonicalLink(link), true, nil
	case entity.SourceAction:
		action, err := uow.ActionRepository().FindOne(ctx, specs...)
		if err != nil || action == nil {
			return "", false, err
		}
		return ingest.CanonicalAction(action), true, nil
	case entity.SourceAttachment:
		attachment, err := uow.AttachmentRepository().FindOne(ctx, specs...)
		if err != nil || attachment == nil {
			return "", false, err
		}
		return ingest.CanonicalAttachment(attachment), true, nil
	}

	return "", false, nil
}

func (cs *consumerService) reportFailure(ctx context.Context, payload dto.EmbedVaultItemMessage, cause error) {
	if cs.eventPublisher == nil {
		return
	}

	evt := events.BaseEvent{
		Type: events.TypeVaultIngestionFailed,
		Data: map[string]interface{}{
			"user_id":   payload.UserId,
			"source":    payload.Source,
			"source_id": payload.SourceId,
			"reason":    cause.Error(),
		},
		OccurredAt: time.Now(),
	}
	if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
		cs.logger.Warn("CONSUMER", "Failed to publish ingestion failure event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
