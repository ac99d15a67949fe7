package embedding

import (
	"errors"
	"fmt"
)

// Dimension is the fixed vector dimension produced by the default provider
// (Gemini text-embedding-004). Every indexed record shares this dimension
// for the lifetime of the index.
const Dimension = 768

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}

// QuotaError marks a provider rejection caused by rate or quota limits.
// Callers treat it as a recoverable condition rather than a hard failure.
type QuotaError struct {
	StatusCode int
	Body       string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("embedding provider quota exceeded, code %d, body %s", e.StatusCode, e.Body)
}

// IsQuotaError reports whether err (or anything it wraps) is a QuotaError.
func IsQuotaError(err error) bool {
	var qe *QuotaError
	return errors.As(err, &qe)
}
