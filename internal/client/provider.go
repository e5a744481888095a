package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/skycopilot/backend/internal/config"
)

// AIClient - 임베딩과 텍스트 생성 경계. 프로바이더 구현체가 모두 만족한다.
type AIClient interface {
	EmbedText(ctx context.Context, text string) ([]float32, string, error)
	Generate(ctx context.Context, system, user string) (string, error)
}

// NewAIClient - AI_PROVIDER 설정에 따라 구현체를 선택한다.
func NewAIClient(ctx context.Context, cfg config.AIConfig) (AIClient, error) {
	dim, err := strconv.Atoi(cfg.EmbeddingDim)
	if err != nil || dim <= 0 {
		return nil, fmt.Errorf("invalid EMBEDDING_DIM: %q", cfg.EmbeddingDim)
	}

	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return NewGenAIClient(ctx, cfg.APIKey, cfg.Model, cfg.EmbeddingModel, dim)

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("missing AI_API_KEY")
		}
		return NewOpenAICompatClient(cfg.APIKey, cfg.Model, cfg.EmbeddingModel, cfg.BaseURL, dim), nil

	case "ollama":
		// Ollama는 OpenAI 호환 API를 제공한다. 키는 무시되지만 클라이언트
		// 설정상 필요하므로 더미 값을 넣는다.
		baseURL := strings.TrimRight(cfg.BaseURL, "/")
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL += "/v1"
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama"
		}
		return NewOpenAICompatClient(apiKey, cfg.Model, cfg.EmbeddingModel, baseURL, dim), nil

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}
