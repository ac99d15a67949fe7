package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"averin-be/pkg/llm"
)

type GeminiProvider struct {
	ApiKey    string
	ModelName string
	BaseURL   string
	Client    *http.Client
}

// Ensure GeminiProvider implements LLMProvider
var _ llm.LLMProvider = &GeminiProvider{}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1"

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	return &GeminiProvider{
		ApiKey:    apiKey,
		ModelName: modelName,
		BaseURL:   defaultBaseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiChatPart struct {
	Text string `json:"text"`
}

type geminiChatContent struct {
	Parts []geminiChatPart `json:"parts"`
	Role  string           `json:"role,omitempty"`
}

type geminiChatRequest struct {
	Contents []geminiChatContent `json:"contents"`
}

type geminiGroundingWeb struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type geminiGroundingChunk struct {
	Web *geminiGroundingWeb `json:"web"`
}

type geminiSearchEntryPoint struct {
	RenderedContent string `json:"renderedContent"`
}

type geminiGroundingMetadata struct {
	SearchEntryPoint *geminiSearchEntryPoint `json:"searchEntryPoint"`
	GroundingChunks  []geminiGroundingChunk  `json:"groundingChunks"`
}

type geminiChatCandidate struct {
	Content           *geminiChatContent       `json:"content"`
	GroundingMetadata *geminiGroundingMetadata `json:"groundingMetadata"`
}

type geminiChatResponse struct {
	Candidates []geminiChatCandidate `json:"candidates"`
}

// --- Interface Implementation ---

func (p *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Result, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	// Map generic messages to Gemini contents; Gemini names the
	// assistant role "model".
	contents := make([]geminiChatContent, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "assistant" || role == "system" {
			role = "model"
		}
		contents[i] = geminiChatContent{
			Parts: []geminiChatPart{{Text: msg.Content}},
			Role:  role,
		}
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	payload := geminiChatRequest{Contents: contents}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", p.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		if res.StatusCode == http.StatusTooManyRequests ||
			strings.Contains(string(resBody), "RESOURCE_EXHAUSTED") ||
			strings.Contains(string(resBody), "quota") {
			return nil, &llm.QuotaError{StatusCode: res.StatusCode, Body: string(resBody)}
		}
		return nil, fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes geminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates, body %s", string(resBody))
	}

	candidate := geminiRes.Candidates[0]
	result := &llm.Result{
		Text:      candidate.Content.Parts[0].Text,
		Grounding: mapGrounding(candidate.GroundingMetadata),
	}

	return result, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Result, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func mapGrounding(meta *geminiGroundingMetadata) *llm.GroundingMetadata {
	if meta == nil {
		return nil
	}

	mapped := &llm.GroundingMetadata{}
	if meta.SearchEntryPoint != nil {
		mapped.SearchEntryPoint = meta.SearchEntryPoint.RenderedContent
	}
	for _, chunk := range meta.GroundingChunks {
		if chunk.Web == nil {
			continue
		}
		mapped.Chunks = append(mapped.Chunks, llm.GroundingChunk{
			Title: chunk.Web.Title,
			URL:   chunk.Web.URI,
		})
	}

	return mapped
}
