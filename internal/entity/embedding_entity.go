package entity

import (
	"time"

	"github.com/google/uuid"
)

// SourceKind is the vault entity category that produced an embedding.
type SourceKind string

const (
	SourceNote       SourceKind = "note"
	SourceAttachment SourceKind = "attachment"
	SourceLink       SourceKind = "link"
	SourceAction     SourceKind = "action"
)

func (k SourceKind) Valid() bool {
	switch k {
	case SourceNote, SourceAttachment, SourceLink, SourceAction:
		return true
	}
	return false
}

// Embedding is one indexed vault item. Content holds the exact text that
// was embedded so search hits can be shown back to the user verbatim.
// At most one live record exists per (UserId, Source, SourceId); the
// ingestion pipeline replaces records transactionally on update.
type Embedding struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Source    SourceKind
	SourceId  uuid.UUID
	Content   string
	Vector    []float32
	CreatedAt time.Time
}
