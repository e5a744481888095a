package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/skycopilot/backend/internal/model"
)

type IncidentService struct {
	repo     IncidentRepo
	embedder EmbeddingClient
}

func NewIncidentService(repo IncidentRepo, embedder EmbeddingClient) *IncidentService {
	return &IncidentService{repo: repo, embedder: embedder}
}

// StoreIncident - 사고 요약을 임베딩해 기록과 함께 저장한다.
// flight_id 기준 멱등 교체(upsert)이므로 재수집해도 중복이 생기지 않는다.
func (s *IncidentService) StoreIncident(ctx context.Context, req model.StoreIncidentRequest) (string, error) {
	flightID := strings.TrimSpace(req.FlightID)
	summary := strings.TrimSpace(req.Summary)
	if flightID == "" || summary == "" {
		return "", fmt.Errorf("flight_id and summary are required")
	}

	vector, modelName, err := s.embedder.EmbedText(ctx, summary)
	if err != nil {
		return modelName, err
	}

	record := model.IncidentRecord{
		FlightID:  flightID,
		Title:     strings.TrimSpace(req.Title),
		Summary:   summary,
		Metadata:  req.Metadata,
		Embedding: vector,
		Model:     modelName,
	}
	return modelName, s.repo.UpsertIncident(ctx, record)
}

func (s *IncidentService) ListIncidents(ctx context.Context) ([]model.IncidentListItem, error) {
	return s.repo.ListIncidents(ctx)
}
