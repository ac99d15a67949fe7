package mapper

import (
	"averin-be/internal/entity"
	"averin-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type EmbeddingMapper struct{}

func NewEmbeddingMapper() *EmbeddingMapper {
	return &EmbeddingMapper{}
}

func (m *EmbeddingMapper) ToEntity(e *model.Embedding) *entity.Embedding {
	if e == nil {
		return nil
	}

	return &entity.Embedding{
		Id:        e.Id,
		UserId:    e.UserId,
		Source:    entity.SourceKind(e.Source),
		SourceId:  e.SourceId,
		Content:   e.Content,
		Vector:    e.Vector.Slice(),
		CreatedAt: e.CreatedAt,
	}
}

func (m *EmbeddingMapper) ToModel(e *entity.Embedding) *model.Embedding {
	if e == nil {
		return nil
	}

	return &model.Embedding{
		Id:        e.Id,
		UserId:    e.UserId,
		Source:    string(e.Source),
		SourceId:  e.SourceId,
		Content:   e.Content,
		Vector:    pgvector.NewVector(e.Vector),
		CreatedAt: e.CreatedAt,
	}
}

func (m *EmbeddingMapper) ToEntities(embeddings []*model.Embedding) []*entity.Embedding {
	entities := make([]*entity.Embedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
