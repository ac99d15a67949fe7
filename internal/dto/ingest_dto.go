package dto

import "github.com/google/uuid"

// EmbedVaultItemMessage asks the ingestion consumer to (re)index a single
// vault item. The payload carries only identifiers; the consumer reloads
// the item so it always indexes the latest stored state.
type EmbedVaultItemMessage struct {
	UserId   uuid.UUID `json:"user_id"`
	Source   string    `json:"source"`
	SourceId uuid.UUID `json:"source_id"`
}
