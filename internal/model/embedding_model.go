package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Embedding struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID       `gorm:"type:uuid;not null;index:idx_embeddings_owner_source,priority:1"`
	Source    string          `gorm:"type:varchar(32);not null;index:idx_embeddings_owner_source,priority:2"`
	SourceId  uuid.UUID       `gorm:"type:uuid;not null;index:idx_embeddings_owner_source,priority:3"`
	Content   string          `gorm:"type:text"`
	Vector    pgvector.Vector `gorm:"type:vector(768)"` // Gemini text-embedding-004 uses 768 dimensions
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (Embedding) TableName() string {
	return "embeddings"
}
