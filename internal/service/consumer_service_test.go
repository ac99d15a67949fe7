package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"averin-be/internal/dto"
	"averin-be/internal/entity"
	"averin-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsumerFixture(t *testing.T, embedder *stubEmbeddingProvider) (*consumerService, *fakeUnitOfWork) {
	t.Helper()
	uow := newFakeUnitOfWork()
	svc, err := NewConsumerService(nil, "EMBED_VAULT_ITEM", &fakeUowFactory{uow: uow}, embedder, nil, 1, nopLogger{})
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc.(*consumerService), uow
}

func embedMessage(t *testing.T, payload dto.EmbedVaultItemMessage) *message.Message {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), raw)
}

func assertAcked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Acked():
	default:
		t.Error("message was not acked")
	}
}

func assertNacked(t *testing.T, msg *message.Message) {
	t.Helper()
	select {
	case <-msg.Nacked():
	default:
		t.Error("message was not nacked")
	}
}

func TestProcessMessageIndexesNote(t *testing.T) {
	embedder := &stubEmbeddingProvider{generate: func(text, taskType string) (*embedding.EmbeddingResponse, error) {
		assert.Equal(t, embedding.TaskRetrievalDocument, taskType)
		assert.Equal(t, "Note: Sleep — slept 4 hours", text)
		return vectorResponse(1, 0, 0), nil
	}}
	svc, uow := newConsumerFixture(t, embedder)

	userId := uuid.New()
	noteId := uuid.New()
	uow.noteRepo.Create(context.Background(), &entity.Note{
		Id: noteId, UserId: userId, Title: "Sleep", Content: "slept 4 hours", CreatedAt: time.Now(),
	})

	msg := embedMessage(t, dto.EmbedVaultItemMessage{
		UserId: userId, Source: string(entity.SourceNote), SourceId: noteId,
	})
	svc.processMessage(context.Background(), msg)

	assertAcked(t, msg)
	require.Len(t, uow.embeddingRepo.records, 1)
	record := uow.embeddingRepo.records[0]
	assert.Equal(t, entity.SourceNote, record.Source)
	assert.Equal(t, noteId, record.SourceId)
	assert.Equal(t, "Note: Sleep — slept 4 hours", record.Content)
	assert.Equal(t, 1, uow.committed)
}

func TestProcessMessageReplacesExistingRecord(t *testing.T) {
	embedder := &stubEmbeddingProvider{generate: func(string, string) (*embedding.EmbeddingResponse, error) {
		return vectorResponse(0, 1, 0), nil
	}}
	svc, uow := newConsumerFixture(t, embedder)

	userId := uuid.New()
	noteId := uuid.New()
	uow.noteRepo.Create(context.Background(), &entity.Note{
		Id: noteId, UserId: userId, Title: "Sleep", Content: "updated content", CreatedAt: time.Now(),
	})
	uow.embeddingRepo.Create(context.Background(), &entity.Embedding{
		Id: uuid.New(), UserId: userId, Source: entity.SourceNote, SourceId: noteId,
		Content: "Note: Sleep — stale content", Vector: []float32{1, 0, 0}, CreatedAt: time.Now(),
	})

	msg := embedMessage(t, dto.EmbedVaultItemMessage{
		UserId: userId, Source: string(entity.SourceNote), SourceId: noteId,
	})
	svc.processMessage(context.Background(), msg)

	assertAcked(t, msg)
	require.Len(t, uow.embeddingRepo.records, 1, "re-indexing must replace, not accumulate")
	assert.Equal(t, "Note: Sleep — updated content", uow.embeddingRepo.records[0].Content)
}

func TestProcessMessageDeletedItemIsAcked(t *testing.T) {
	embedder := &stubEmbeddingProvider{generate: func(string, string) (*embedding.EmbeddingResponse, error) {
		t.Fatal("must not embed a missing item")
		return nil, nil
	}}
	svc, uow := newConsumerFixture(t, embedder)

	msg := embedMessage(t, dto.EmbedVaultItemMessage{
		UserId: uuid.New(), Source: string(entity.SourceNote), SourceId: uuid.New(),
	})
	svc.processMessage(context.Background(), msg)

	assertAcked(t, msg)
	assert.Empty(t, uow.embeddingRepo.records)
}

func TestProcessMessageEmbedFailureIsNacked(t *testing.T) {
	embedder := &stubEmbeddingProvider{generate: func(string, string) (*embedding.EmbeddingResponse, error) {
		return nil, errors.New("provider down")
	}}
	svc, uow := newConsumerFixture(t, embedder)

	userId := uuid.New()
	noteId := uuid.New()
	uow.noteRepo.Create(context.Background(), &entity.Note{
		Id: noteId, UserId: userId, Title: "t", Content: "c", CreatedAt: time.Now(),
	})

	msg := embedMessage(t, dto.EmbedVaultItemMessage{
		UserId: userId, Source: string(entity.SourceNote), SourceId: noteId,
	})
	svc.processMessage(context.Background(), msg)

	assertNacked(t, msg)
	assert.Empty(t, uow.embeddingRepo.records)
	assert.Equal(t, 0, uow.committed)
}

func TestProcessMessageMalformedPayloadIsAcked(t *testing.T) {
	embedder := &stubEmbeddingProvider{generate: func(string, string) (*embedding.EmbeddingResponse, error) {
		return vectorResponse(1), nil
	}}
	svc, _ := newConsumerFixture(t, embedder)

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	svc.processMessage(context.Background(), msg)

	assertAcked(t, msg)
}

func TestProcessMessageUnknownSourceIsAcked(t *testing.T) {
	embedder := &stubEmbeddingProvider{generate: func(string, string) (*embedding.EmbeddingResponse, error) {
		return vectorResponse(1), nil
	}}
	svc, uow := newConsumerFixture(t, embedder)

	msg := embedMessage(t, dto.EmbedVaultItemMessage{
		UserId: uuid.New(), Source: "calendar", SourceId: uuid.New(),
	})
	svc.processMessage(context.Background(), msg)

	assertAcked(t, msg)
	assert.Empty(t, uow.embeddingRepo.records)
}

func TestProcessMessageIndexesAttachment(t *testing.T) {
	embedder := &stubEmbeddingProvider{generate: func(text, _ string) (*embedding.EmbeddingResponse, error) {
		assert.Equal(t, "Attachment: scan.pdf\nType: ocr\nContent: extracted text", text)
		return vectorResponse(1, 0, 0), nil
	}}
	svc, uow := newConsumerFixture(t, embedder)

	userId := uuid.New()
	attachmentId := uuid.New()
	uow.attachmentRepo.Create(context.Background(), &entity.Attachment{
		Id: attachmentId, UserId: userId, Name: "scan.pdf", ContentType: "ocr",
		Content: "extracted text", CreatedAt: time.Now(),
	})

	msg := embedMessage(t, dto.EmbedVaultItemMessage{
		UserId: userId, Source: string(entity.SourceAttachment), SourceId: attachmentId,
	})
	svc.processMessage(context.Background(), msg)

	assertAcked(t, msg)
	require.Len(t, uow.embeddingRepo.records, 1)
	assert.Equal(t, entity.SourceAttachment, uow.embeddingRepo.records[0].Source)
}
