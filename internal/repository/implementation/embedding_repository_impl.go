package implementation

import (
	"context"
	"errors"

	"averin-be/internal/entity"
	"averin-be/internal/mapper"
	"averin-be/internal/model"
	"averin-be/internal/repository/contract"
	"averin-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type EmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmbeddingMapper
}

func NewEmbeddingRepository(db *gorm.DB) contract.EmbeddingRepository {
	return &EmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmbeddingMapper(),
	}
}

func (r *EmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.Embedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *EmbeddingRepositoryImpl) DeleteBySource(ctx context.Context, userId uuid.UUID, source entity.SourceKind, sourceId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND source = ? AND source_id = ?", userId, string(source), sourceId).
		Delete(&model.Embedding{}).Error
}

func (r *EmbeddingRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&model.Embedding{}).Error
}

func (r *EmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Embedding, error) {
	var m model.Embedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Embedding, error) {
	var models []*model.Embedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Embedding{}).Count(&count).Error
	return count, err
}

// SearchSimilar runs the nearest-neighbor query. pgvector's <=> operator
// is cosine distance, so similarity = 1 - distance and ordering by the
// selected alias descending is equivalent to ascending distance;
// created_at and id make the order stable across equal distances.
func (r *EmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, userId uuid.UUID, vector []float32, limit int) ([]*contract.ScoredEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.Embedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(vector)

	err := r.db.WithContext(ctx).
		Table("embeddings").
		Select("embeddings.*, 1 - (vector <=> ?) as similarity", queryVector).
		Where("user_id = ?", userId).
		Order("similarity DESC, created_at ASC, id ASC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredEmbedding{
			Embedding:  r.mapper.ToEntity(&res.Embedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
