package service

import (
	"context"
	"math"
	"strings"

	"averin-be/internal/dto"
	"averin-be/internal/pkg/logger"
	"averin-be/internal/repository/unitofwork"
	"averin-be/pkg/embedding"
	"averin-be/pkg/llm"
	ragcontext "averin-be/pkg/rag/context"
	"averin-be/pkg/rag/prompt"
	"averin-be/pkg/rag/response"
	"averin-be/pkg/rag/session"

	"github.com/google/uuid"
)

type IChatService interface {
	Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResult, error)
}

// chatService runs the full answer flow: cap check, query embedding,
// similarity search, context assembly, prompt build, generation. Quota
// rejections from either provider stage become a soft apology answer
// with a retry hint; every other provider failure is a hard error.
type chatService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	assembler         *ragcontext.Assembler
	retrievalLimit    int
	logger            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	retrievalLimit int,
	contextMaxChars int,
	log logger.ILogger,
) IChatService {
	if retrievalLimit <= 0 {
		retrievalLimit = 7
	}
	return &chatService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		assembler:         ragcontext.NewAssembler(contextMaxChars),
		retrievalLimit:    retrievalLimit,
		logger:            log,
	}
}

func (s *chatService) Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResult, error) {
	history := make([]session.Turn, 0, len(req.ConversationHistory))
	for _, t := range req.ConversationHistory {
		history = append(history, session.Turn{Role: t.Role, Content: t.Content})
	}

	sess := session.FromHistory(history)
	if !sess.CanAsk() {
		return &dto.AskResult{LimitReached: true}, nil
	}

	queryEmbedding, err := s.embeddingProvider.Generate(req.Question, embedding.TaskRetrievalQuery)
	if err != nil {
		if embedding.IsQuotaError(err) {
			s.logger.Warn("CHAT", "Embedding quota exhausted", map[string]interface{}{
				"user_id": userId,
			})
			return s.quotaResult(), nil
		}
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	hits, err := uow.EmbeddingRepository().SearchSimilar(ctx, userId, queryEmbedding.Embedding.Values, s.retrievalLimit)
	if err != nil {
		return nil, err
	}

	contextHits := make([]ragcontext.Hit, 0, len(hits))
	for _, h := range hits {
		contextHits = append(contextHits, ragcontext.Hit{
			Source:     string(h.Embedding.Source),
			Content:    h.Embedding.Content,
			Similarity: h.Similarity,
		})
	}

	block := s.assembler.Assemble(contextHits, history)
	if block == nil {
		// Nothing indexed for this user yet, answer without generating.
		return &dto.AskResult{
			Answer:  response.FallbackNoData,
			Sources: []dto.SourceDTO{},
		}, nil
	}

	fullPrompt := prompt.NewBuilder(block, req.Question).Build()

	result, err := s.llmProvider.Generate(ctx, fullPrompt)
	if err != nil {
		if llm.IsQuotaError(err) {
			s.logger.Warn("CHAT", "Generation quota exhausted", map[string]interface{}{
				"user_id": userId,
			})
			return s.quotaResult(), nil
		}
		return nil, err
	}

	sources := make([]dto.SourceDTO, 0, len(hits))
	for _, h := range hits {
		sources = append(sources, dto.SourceDTO{
			Source:     string(h.Embedding.Source),
			Content:    h.Embedding.Content,
			Similarity: roundSimilarity(h.Similarity),
		})
	}

	return &dto.AskResult{
		Answer:         strings.TrimSpace(result.Text),
		Sources:        sources,
		SearchMetadata: groundingToDTO(result.Grounding),
	}, nil
}

func (s *chatService) quotaResult() *dto.AskResult {
	return &dto.AskResult{
		Answer:     response.QuotaApology,
		Sources:    []dto.SourceDTO{},
		RetryAfter: response.QuotaRetryAfterSeconds,
	}
}

// roundSimilarity trims scores to 4 decimal places for display.
func roundSimilarity(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func groundingToDTO(g *llm.GroundingMetadata) *dto.SearchMetadataDTO {
	if g == nil {
		return nil
	}
	chunks := make([]dto.GroundingChunkDTO, 0, len(g.Chunks))
	for _, c := range g.Chunks {
		chunks = append(chunks, dto.GroundingChunkDTO{Title: c.Title, Url: c.URL})
	}
	return &dto.SearchMetadataDTO{
		SearchEntryPoint: g.SearchEntryPoint,
		GroundingChunks:  chunks,
	}
}
