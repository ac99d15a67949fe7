package dto

// ConversationTurnDTO is one caller-held message in the running
// conversation. The caller resends the full, growing history on every
// request; nothing is kept server-side.
type ConversationTurnDTO struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

type AskRequest struct {
	Question            string                `json:"question" validate:"required"`
	ConversationHistory []ConversationTurnDTO `json:"conversationHistory" validate:"dive"`
}

// SourceDTO is one cited vault item backing the answer. Similarity is
// rounded to 4 decimal places for display.
type SourceDTO struct {
	Source     string  `json:"source"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

type GroundingChunkDTO struct {
	Title string `json:"title,omitempty"`
	Url   string `json:"url,omitempty"`
}

type SearchMetadataDTO struct {
	SearchEntryPoint string              `json:"searchEntryPoint,omitempty"`
	GroundingChunks  []GroundingChunkDTO `json:"groundingChunks,omitempty"`
}

// AskResult is the orchestrator's outcome, shaped by the controller into
// the wire contract. Exactly one of the terminal flavors applies:
// LimitReached, a soft quota answer (RetryAfter > 0), or a normal answer.
type AskResult struct {
	Answer         string
	Sources        []SourceDTO
	SearchMetadata *SearchMetadataDTO
	LimitReached   bool
	RetryAfter     int
}
