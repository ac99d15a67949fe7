package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"averin-be/internal/dto"
	"averin-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteCreateQueuesIndexing(t *testing.T) {
	uow := newFakeUnitOfWork()
	pub := &capturedPublish{}
	svc := NewNoteService(&fakeUowFactory{uow: uow}, pub, nopLogger{})

	userId := uuid.New()
	res, err := svc.Create(context.Background(), userId, &dto.CreateNoteRequest{Title: "Sleep", Body: "slept 4 hours"})

	require.NoError(t, err)
	assert.Equal(t, "Sleep", res.Title)
	assert.Equal(t, "slept 4 hours", res.Body)

	require.Len(t, pub.payloads, 1)
	var msg dto.EmbedVaultItemMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Equal(t, userId, msg.UserId)
	assert.Equal(t, string(entity.SourceNote), msg.Source)
	assert.Equal(t, res.Id, msg.SourceId)
}

func TestNoteCreateSurvivesPublishFailure(t *testing.T) {
	uow := newFakeUnitOfWork()
	pub := &capturedPublish{err: assert.AnError}
	svc := NewNoteService(&fakeUowFactory{uow: uow}, pub, nopLogger{})

	res, err := svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{Body: "body"})

	require.NoError(t, err, "indexing is best-effort, the write must succeed")
	assert.NotNil(t, res)
	assert.Len(t, uow.noteRepo.notes, 1)
}

func TestNoteUpdateOtherUsersNoteRejected(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewNoteService(&fakeUowFactory{uow: uow}, &capturedPublish{}, nopLogger{})

	noteId := uuid.New()
	uow.noteRepo.Create(context.Background(), &entity.Note{
		Id: noteId, UserId: uuid.New(), Title: "theirs", Content: "c", CreatedAt: time.Now(),
	})

	_, err := svc.Update(context.Background(), uuid.New(), &dto.UpdateNoteRequest{Id: noteId, Body: "hijack"})

	assert.Error(t, err)
}

func TestNoteDeleteRemovesEmbeddings(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewNoteService(&fakeUowFactory{uow: uow}, &capturedPublish{}, nopLogger{})

	userId := uuid.New()
	noteId := uuid.New()
	uow.noteRepo.Create(context.Background(), &entity.Note{
		Id: noteId, UserId: userId, Title: "t", Content: "c", CreatedAt: time.Now(),
	})
	uow.embeddingRepo.Create(context.Background(), &entity.Embedding{
		Id: uuid.New(), UserId: userId, Source: entity.SourceNote, SourceId: noteId,
		Content: "Note: t — c", Vector: []float32{1}, CreatedAt: time.Now(),
	})

	err := svc.Delete(context.Background(), userId, noteId)

	require.NoError(t, err)
	assert.Empty(t, uow.noteRepo.notes)
	assert.Empty(t, uow.embeddingRepo.records)
	assert.Equal(t, 1, uow.committed)
}

func TestLinkCreateBulkSkipsDuplicates(t *testing.T) {
	uow := newFakeUnitOfWork()
	pub := &capturedPublish{}
	svc := NewLinkService(&fakeUowFactory{uow: uow}, pub, nopLogger{})

	userId := uuid.New()
	first, err := svc.CreateBulk(context.Background(), userId, &dto.CreateLinksRequest{
		Links: []dto.LinkItemDTO{{Url: "https://example.com", Title: "Example"}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, first.Count)

	second, err := svc.CreateBulk(context.Background(), userId, &dto.CreateLinksRequest{
		Links: []dto.LinkItemDTO{
			{Url: "https://example.com", Title: "Example again"},
			{Url: "https://other.com"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, second.Count)
	assert.Len(t, uow.linkRepo.links, 2, "duplicate url must not create a second row")
	// The duplicate resolves to the already stored row.
	assert.Equal(t, first.Links[0].Id, second.Links[0].Id)
}

func TestActionpartialUpdate(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewActionService(&fakeUowFactory{uow: uow}, &capturedPublish{}, nopLogger{})

	userId := uuid.New()
	created, err := svc.Create(context.Background(), userId, &dto.CreateActionRequest{
		Title: "Run", IsRecurring: true,
	})
	require.NoError(t, err)

	completed := true
	updated, err := svc.Update(context.Background(), userId, &dto.UpdateActionRequest{
		Id: created.Id, IsCompleted: &completed,
	})
	require.NoError(t, err)

	assert.Equal(t, "Run", updated.Title, "unset fields stay untouched")
	assert.True(t, updated.IsRecurring)
	assert.True(t, updated.IsCompleted)
}

func TestAttachmentCreateDefaultsContentType(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewAttachmentService(&fakeUowFactory{uow: uow}, &capturedPublish{}, nopLogger{})

	res, err := svc.Create(context.Background(), uuid.New(), &dto.CreateAttachmentRequest{
		Name: "notes.txt", Content: "plain text",
	})

	require.NoError(t, err)
	assert.Equal(t, "text", res.ContentType)
}

func TestLinkCreateBulkFiltersBlankUrls(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewLinkService(&fakeUowFactory{uow: uow}, &capturedPublish{}, nopLogger{})

	res, err := svc.CreateBulk(context.Background(), uuid.New(), &dto.CreateLinksRequest{
		Links: []dto.LinkItemDTO{
			{Url: ""},
			{Url: "   "},
			{Url: "https://example.com", Title: "Example"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Count, "blank urls are dropped, not fatal")
	assert.Equal(t, "https://example.com", res.Links[0].Url)
}

func TestLinkCreateBulkAllBlankRejected(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewLinkService(&fakeUowFactory{uow: uow}, &capturedPublish{}, nopLogger{})

	res, err := svc.CreateBulk(context.Background(), uuid.New(), &dto.CreateLinksRequest{
		Links: []dto.LinkItemDTO{{Url: ""}, {Url: " \t"}},
	})

	require.Error(t, err)
	assert.Nil(t, res)
	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	assert.Equal(t, "No valid links provided", fiberErr.Message)
	assert.Empty(t, uow.linkRepo.links)
}

func TestActionTitleTrimmed(t *testing.T) {
	uow := newFakeUnitOfWork()
	svc := NewActionService(&fakeUowFactory{uow: uow}, &capturedPublish{}, nopLogger{})

	userId := uuid.New()
	created, err := svc.Create(context.Background(), userId, &dto.CreateActionRequest{
		Title: "  Run 5k  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Run 5k", created.Title)

	newTitle := " Run 10k "
	updated, err := svc.Update(context.Background(), userId, &dto.UpdateActionRequest{
		Id: created.Id, Title: &newTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, "Run 10k", updated.Title)
}
