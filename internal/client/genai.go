package client

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GenAIClient struct {
	client         *genai.Client
	model          string
	embeddingModel string
	dim            int
}

func NewGenAIClient(ctx context.Context, apiKey, model, embeddingModel string, dim int) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing AI_API_KEY")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &GenAIClient{client: client, model: model, embeddingModel: embeddingModel, dim: dim}, nil
}

// EmbedText - 설정된 차원의 벡터를 반환하거나 명시적으로 실패한다.
// 잘라내거나 패딩하지 않는다.
func (c *GenAIClient) EmbedText(ctx context.Context, text string) ([]float32, string, error) {
	cfg := &genai.EmbedContentConfig{OutputDimensionality: genai.Ptr(int32(c.dim))}
	res, err := c.client.Models.EmbedContent(ctx, c.embeddingModel, genai.Text(text), cfg)
	if err != nil {
		return nil, c.embeddingModel, err
	}
	if res == nil || len(res.Embeddings) == 0 || res.Embeddings[0] == nil {
		return nil, c.embeddingModel, fmt.Errorf("empty embedding result")
	}
	vector := res.Embeddings[0].Values
	if len(vector) != c.dim {
		return nil, c.embeddingModel, fmt.Errorf("embedding dimension mismatch: got %d, want %d", len(vector), c.dim)
	}
	return vector, c.embeddingModel, nil
}

func (c *GenAIClient) Generate(ctx context.Context, system, user string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), cfg)
	if err != nil {
		return "", err
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("empty generation result")
	}
	return text, nil
}
