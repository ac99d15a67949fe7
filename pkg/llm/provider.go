package llm

import (
	"context"
	"errors"
	"fmt"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Result carries the generated text plus any grounding metadata the
// provider attached to the answer. Grounding is nil for providers that
// do not support it.
type Result struct {
	Text      string
	Grounding *GroundingMetadata
}

// GroundingMetadata mirrors the optional web-grounding block Gemini can
// return alongside a generation.
type GroundingMetadata struct {
	SearchEntryPoint string
	Chunks           []GroundingChunk
}

type GroundingChunk struct {
	Title string
	URL   string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (*Result, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (*Result, error)
}

// QuotaError marks a generation rejected for rate or quota reasons.
// The chat flow answers these softly instead of failing the request.
type QuotaError struct {
	StatusCode int
	Body       string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("llm provider quota exceeded, code %d, body %s", e.StatusCode, e.Body)
}

// IsQuotaError reports whether err (or anything it wraps) is a QuotaError.
func IsQuotaError(err error) bool {
	var qe *QuotaError
	return errors.As(err, &qe)
}
