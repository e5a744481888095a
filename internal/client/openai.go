package client

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAICompatClient - OpenAI 호환 API 클라이언트.
// BaseURL을 바꾸면 Ollama 같은 로컬 서버에도 붙는다.
type OpenAICompatClient struct {
	client         *openai.Client
	model          string
	embeddingModel string
	dim            int
}

func NewOpenAICompatClient(apiKey, model, embeddingModel, baseURL string, dim int) *OpenAICompatClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAICompatClient{
		client:         openai.NewClientWithConfig(cfg),
		model:          model,
		embeddingModel: embeddingModel,
		dim:            dim,
	}
}

func (c *OpenAICompatClient) EmbedText(ctx context.Context, text string) ([]float32, string, error) {
	res, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      openai.EmbeddingModel(c.embeddingModel),
		Dimensions: c.dim,
	})
	if err != nil {
		return nil, c.embeddingModel, err
	}
	if len(res.Data) == 0 {
		return nil, c.embeddingModel, fmt.Errorf("empty embedding result")
	}
	vector := res.Data[0].Embedding
	if len(vector) != c.dim {
		return nil, c.embeddingModel, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(vector), c.dim)
	}
	return vector, c.embeddingModel, nil
}

func (c *OpenAICompatClient) Generate(ctx context.Context, system, user string) (string, error) {
	res, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}
	return res.Choices[0].Message.Content, nil
}
