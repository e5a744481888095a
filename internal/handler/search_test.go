package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/skycopilot/backend/internal/model"
	"github.com/skycopilot/backend/internal/service"
)

type stubIncidentRepo struct {
	records []model.IncidentRecord
}

func (s *stubIncidentRepo) UpsertIncident(ctx context.Context, record model.IncidentRecord) error {
	s.records = append(s.records, record)
	return nil
}

func (s *stubIncidentRepo) GetAllIncidents(ctx context.Context) ([]model.IncidentRecord, error) {
	return s.records, nil
}

func (s *stubIncidentRepo) ListIncidents(ctx context.Context) ([]model.IncidentListItem, error) {
	return nil, nil
}

type stubEmbedder struct{}

func (s *stubEmbedder) EmbedText(ctx context.Context, text string) ([]float32, string, error) {
	return []float32{1, 0}, "text-embedding-004", nil
}

func newSearchRouter(t *testing.T, repo *stubIncidentRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewSearchService(repo, &stubEmbedder{})
	r := gin.New()
	r.GET("/api/v1/similar-incidents", NewSearchHandler(svc).SearchSimilarIncidents)
	return r
}

func TestSearchHandlerRequiresQuery(t *testing.T) {
	r := newSearchRouter(t, &stubIncidentRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/similar-incidents", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without query, got %d", w.Code)
	}
}

func TestSearchHandlerRejectsBadTopK(t *testing.T) {
	r := newSearchRouter(t, &stubIncidentRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/similar-incidents?query=stall&top_k=abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer top_k, got %d", w.Code)
	}
}

func TestSearchHandlerReturnsRankedResults(t *testing.T) {
	repo := &stubIncidentRepo{records: []model.IncidentRecord{
		{FlightID: "FAR", Summary: "unrelated", Embedding: []float32{0, 1}},
		{FlightID: "NEAR", Summary: "glide slope deviation", Embedding: []float32{1, 0}},
	}}
	r := newSearchRouter(t, repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/similar-incidents?query=glide+slope&top_k=1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp model.SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].FlightID != "NEAR" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}
