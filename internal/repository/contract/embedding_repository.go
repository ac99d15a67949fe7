package contract

import (
	"context"

	"averin-be/internal/entity"
	"averin-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredEmbedding wraps an Embedding with its cosine similarity to the
// query vector (1.0 = identical).
type ScoredEmbedding struct {
	Embedding  *entity.Embedding
	Similarity float64
}

// EmbeddingRepository is the vector store. Uniqueness per
// (user, source, sourceId) is not enforced here; the ingestion pipeline
// deletes prior records before inserting a replacement, inside one
// transaction. That delete-first contract is the single conflict policy
// for every source kind.
type EmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.Embedding) error
	DeleteBySource(ctx context.Context, userId uuid.UUID, source entity.SourceKind, sourceId uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Embedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Embedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar returns the owner's k nearest records by cosine
	// distance, most similar first. Ties break by insertion order. An
	// owner with no records gets an empty slice, not an error.
	SearchSimilar(ctx context.Context, userId uuid.UUID, vector []float32, limit int) ([]*ScoredEmbedding, error)
}
