package service

import (
	"context"
	"math"
	"sort"

	"averin-be/internal/entity"
	"averin-be/internal/pkg/logger"
	"averin-be/internal/repository/contract"
	"averin-be/internal/repository/specification"
	"averin-be/internal/repository/unitofwork"
	"averin-be/pkg/embedding"
	"averin-be/pkg/llm"

	"github.com/google/uuid"
)

// Shared in-memory fakes for the service tests. The repositories
// interpret just the specifications the services actually use (ByID,
// UserOwnedBy); SearchSimilar runs real cosine math so ranking behavior
// is tested, not scripted.

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

var _ logger.ILogger = nopLogger{}

func matchSpecs(id, userId uuid.UUID, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if s.ID != id {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserID != userId {
				return false
			}
		}
	}
	return true
}

type fakeNoteRepo struct {
	notes map[uuid.UUID]*entity.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: make(map[uuid.UUID]*entity.Note)}
}

func (r *fakeNoteRepo) Create(_ context.Context, note *entity.Note) error {
	copied := *note
	r.notes[note.Id] = &copied
	return nil
}

func (r *fakeNoteRepo) Update(_ context.Context, note *entity.Note) error {
	copied := *note
	r.notes[note.Id] = &copied
	return nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Note, error) {
	for _, n := range r.notes {
		if matchSpecs(n.Id, n.UserId, specs) {
			copied := *n
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var out []*entity.Note
	for _, n := range r.notes {
		if matchSpecs(n.Id, n.UserId, specs) {
			copied := *n
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.notes)), nil
}

type fakeLinkRepo struct {
	links map[uuid.UUID]*entity.Link
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: make(map[uuid.UUID]*entity.Link)}
}

func (r *fakeLinkRepo) CreateBulk(_ context.Context, links []*entity.Link) ([]*entity.Link, error) {
	var out []*entity.Link
	for _, l := range links {
		duplicate := false
		for _, existing := range r.links {
			if existing.UserId == l.UserId && existing.Url == l.Url {
				copied := *existing
				out = append(out, &copied)
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		copied := *l
		r.links[l.Id] = &copied
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLinkRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.links, id)
	return nil
}

func (r *fakeLinkRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Link, error) {
	for _, l := range r.links {
		if matchSpecs(l.Id, l.UserId, specs) {
			copied := *l
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeLinkRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Link, error) {
	var out []*entity.Link
	for _, l := range r.links {
		if matchSpecs(l.Id, l.UserId, specs) {
			copied := *l
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeActionRepo struct {
	actions map[uuid.UUID]*entity.Action
}

func newFakeActionRepo() *fakeActionRepo {
	return &fakeActionRepo{actions: make(map[uuid.UUID]*entity.Action)}
}

func (r *fakeActionRepo) Create(_ context.Context, action *entity.Action) error {
	copied := *action
	r.actions[action.Id] = &copied
	return nil
}

func (r *fakeActionRepo) Update(_ context.Context, action *entity.Action) error {
	copied := *action
	r.actions[action.Id] = &copied
	return nil
}

func (r *fakeActionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.actions, id)
	return nil
}

func (r *fakeActionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Action, error) {
	for _, a := range r.actions {
		if matchSpecs(a.Id, a.UserId, specs) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeActionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Action, error) {
	var out []*entity.Action
	for _, a := range r.actions {
		if matchSpecs(a.Id, a.UserId, specs) {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeAttachmentRepo struct {
	attachments map[uuid.UUID]*entity.Attachment
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: make(map[uuid.UUID]*entity.Attachment)}
}

func (r *fakeAttachmentRepo) Create(_ context.Context, attachment *entity.Attachment) error {
	copied := *attachment
	r.attachments[attachment.Id] = &copied
	return nil
}

func (r *fakeAttachmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.attachments, id)
	return nil
}

func (r *fakeAttachmentRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Attachment, error) {
	for _, a := range r.attachments {
		if matchSpecs(a.Id, a.UserId, specs) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAttachmentRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Attachment, error) {
	var out []*entity.Attachment
	for _, a := range r.attachments {
		if matchSpecs(a.Id, a.UserId, specs) {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeEmbeddingRepo struct {
	records   []*entity.Embedding
	searchErr error
}

func newFakeEmbeddingRepo() *fakeEmbeddingRepo {
	return &fakeEmbeddingRepo{}
}

func (r *fakeEmbeddingRepo) Create(_ context.Context, e *entity.Embedding) error {
	copied := *e
	r.records = append(r.records, &copied)
	return nil
}

func (r *fakeEmbeddingRepo) DeleteBySource(_ context.Context, userId uuid.UUID, source entity.SourceKind, sourceId uuid.UUID) error {
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.UserId == userId && rec.Source == source && rec.SourceId == sourceId {
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return nil
}

func (r *fakeEmbeddingRepo) DeleteAllByUserId(_ context.Context, userId uuid.UUID) error {
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.UserId == userId {
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return nil
}

func (r *fakeEmbeddingRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Embedding, error) {
	for _, rec := range r.records {
		if matchSpecs(rec.Id, rec.UserId, specs) {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeEmbeddingRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Embedding, error) {
	var out []*entity.Embedding
	for _, rec := range r.records {
		if matchSpecs(rec.Id, rec.UserId, specs) {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeEmbeddingRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.records)), nil
}

func (r *fakeEmbeddingRepo) SearchSimilar(_ context.Context, userId uuid.UUID, vector []float32, limit int) ([]*contract.ScoredEmbedding, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}

	var scored []*contract.ScoredEmbedding
	for _, rec := range r.records {
		if rec.UserId != userId {
			continue
		}
		copied := *rec
		scored = append(scored, &contract.ScoredEmbedding{
			Embedding:  &copied,
			Similarity: cosineSimilarity(vector, rec.Vector),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	if scored == nil {
		scored = []*contract.ScoredEmbedding{}
	}
	return scored, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

type fakeUnitOfWork struct {
	noteRepo       *fakeNoteRepo
	linkRepo       *fakeLinkRepo
	actionRepo     *fakeActionRepo
	attachmentRepo *fakeAttachmentRepo
	embeddingRepo  *fakeEmbeddingRepo

	begun      int
	committed  int
	rolledBack int
	beginErr   error
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		noteRepo:       newFakeNoteRepo(),
		linkRepo:       newFakeLinkRepo(),
		actionRepo:     newFakeActionRepo(),
		attachmentRepo: newFakeAttachmentRepo(),
		embeddingRepo:  newFakeEmbeddingRepo(),
	}
}

func (u *fakeUnitOfWork) Begin(context.Context) error {
	if u.beginErr != nil {
		return u.beginErr
	}
	u.begun++
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.committed++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.rolledBack++
	return nil
}

func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository             { return u.noteRepo }
func (u *fakeUnitOfWork) LinkRepository() contract.LinkRepository             { return u.linkRepo }
func (u *fakeUnitOfWork) ActionRepository() contract.ActionRepository         { return u.actionRepo }
func (u *fakeUnitOfWork) AttachmentRepository() contract.AttachmentRepository { return u.attachmentRepo }
func (u *fakeUnitOfWork) EmbeddingRepository() contract.EmbeddingRepository   { return u.embeddingRepo }

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type stubEmbeddingProvider struct {
	generate func(text, taskType string) (*embedding.EmbeddingResponse, error)
	calls    []string
}

func (p *stubEmbeddingProvider) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	p.calls = append(p.calls, taskType)
	return p.generate(text, taskType)
}

func vectorResponse(values ...float32) *embedding.EmbeddingResponse {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: values},
	}
}

type stubLLMProvider struct {
	result  *llm.Result
	err     error
	prompts []string
}

func (p *stubLLMProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (*llm.Result, error) {
	if len(history) > 0 {
		p.prompts = append(p.prompts, history[len(history)-1].Content)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

func (p *stubLLMProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Result, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
