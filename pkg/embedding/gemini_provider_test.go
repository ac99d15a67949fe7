package embedding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestProvider(server *httptest.Server) *GeminiProvider {
	return &GeminiProvider{
		ApiKey:  "test-key",
		BaseURL: server.URL,
		Client:  server.Client(),
	}
}

func TestGenerateSendsTaskTypeAndParsesVector(t *testing.T) {
	var gotReq EmbeddingRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}

		values := make([]float32, Dimension)
		for i := range values {
			values[i] = float32(i)
		}
		json.NewEncoder(w).Encode(EmbeddingResponse{
			Embedding: EmbeddingResponseEmbedding{Values: values},
		})
	}))
	defer server.Close()

	provider := newTestProvider(server)

	res, err := provider.Generate("hello", TaskRetrievalQuery)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if gotReq.TaskType != TaskRetrievalQuery {
		t.Errorf("request task type = %q, want %q", gotReq.TaskType, TaskRetrievalQuery)
	}
	if gotReq.Content.Parts[0].Text != "hello" {
		t.Errorf("request text = %q, want %q", gotReq.Content.Parts[0].Text, "hello")
	}
	if len(res.Embedding.Values) != Dimension {
		t.Errorf("vector dimension = %d, want %d", len(res.Embedding.Values), Dimension)
	}
}

func TestGenerateQuotaClassification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantQuota bool
	}{
		{
			name:      "http 429",
			status:    http.StatusTooManyRequests,
			body:      `{"error":{"message":"slow down"}}`,
			wantQuota: true,
		},
		{
			name:      "resource exhausted in body",
			status:    http.StatusBadRequest,
			body:      `{"error":{"status":"RESOURCE_EXHAUSTED"}}`,
			wantQuota: true,
		},
		{
			name:      "quota keyword in body",
			status:    http.StatusForbidden,
			body:      `{"error":{"message":"quota exceeded for project"}}`,
			wantQuota: true,
		},
		{
			name:      "plain server error",
			status:    http.StatusInternalServerError,
			body:      `{"error":{"message":"boom"}}`,
			wantQuota: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider := newTestProvider(server)

			_, err := provider.Generate("text", TaskRetrievalDocument)
			if err == nil {
				t.Fatal("Generate() expected error")
			}
			if got := IsQuotaError(err); got != tt.wantQuota {
				t.Errorf("IsQuotaError() = %v, want %v (err %v)", got, tt.wantQuota, err)
			}
		})
	}
}
