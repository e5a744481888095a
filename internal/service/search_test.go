package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/skycopilot/backend/internal/model"
)

type fakeIncidentRepo struct {
	records  []model.IncidentRecord
	upserted []model.IncidentRecord
	err      error
}

func (f *fakeIncidentRepo) UpsertIncident(ctx context.Context, record model.IncidentRecord) error {
	f.upserted = append(f.upserted, record)
	return f.err
}

func (f *fakeIncidentRepo) GetAllIncidents(ctx context.Context) ([]model.IncidentRecord, error) {
	return f.records, f.err
}

func (f *fakeIncidentRepo) ListIncidents(ctx context.Context) ([]model.IncidentListItem, error) {
	items := make([]model.IncidentListItem, 0, len(f.records))
	for _, r := range f.records {
		items = append(items, model.IncidentListItem{FlightID: r.FlightID, Summary: r.Summary})
	}
	return items, f.err
}

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) EmbedText(ctx context.Context, text string) ([]float32, string, error) {
	return f.vector, "text-embedding-004", f.err
}

func record(flightID string, embedding []float32) model.IncidentRecord {
	return model.IncidentRecord{FlightID: flightID, Summary: "summary of " + flightID, Embedding: embedding}
}

func TestSearchEmptyStore(t *testing.T) {
	svc := NewSearchService(&fakeIncidentRepo{}, &fakeEmbedder{vector: []float32{1, 0}})

	results, err := svc.Search(context.Background(), "glide slope deviation", 0)
	if err != nil {
		t.Fatalf("empty store must not error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestSearchRanksDescending(t *testing.T) {
	repo := &fakeIncidentRepo{records: []model.IncidentRecord{
		record("LOW", []float32{0, 1}),
		record("HIGH", []float32{1, 0}),
		record("MID", []float32{1, 1}),
	}}
	svc := NewSearchService(repo, &fakeEmbedder{vector: []float32{1, 0}})

	results, err := svc.Search(context.Background(), "query", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].FlightID != "HIGH" || results[1].FlightID != "MID" || results[2].FlightID != "LOW" {
		t.Fatalf("wrong order: %s, %s, %s", results[0].FlightID, results[1].FlightID, results[2].FlightID)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Fatalf("similarities not descending: %v", results)
		}
	}
}

func TestSearchTopKTruncation(t *testing.T) {
	repo := &fakeIncidentRepo{records: []model.IncidentRecord{
		record("A", []float32{1, 0}),
		record("B", []float32{0.9, 0.1}),
		record("C", []float32{0, 1}),
	}}
	svc := NewSearchService(repo, &fakeEmbedder{vector: []float32{1, 0}})

	results, err := svc.Search(context.Background(), "query", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].FlightID != "A" {
		t.Fatalf("expected single best match A, got %+v", results)
	}
}

func TestSearchDefaultTopK(t *testing.T) {
	var records []model.IncidentRecord
	for _, id := range []string{"A", "B", "C", "D", "E"} {
		records = append(records, record(id, []float32{1, 0}))
	}
	svc := NewSearchService(&fakeIncidentRepo{records: records}, &fakeEmbedder{vector: []float32{1, 0}})

	results, err := svc.Search(context.Background(), "query", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != defaultTopK {
		t.Fatalf("expected %d results for topK=0, got %d", defaultTopK, len(results))
	}
}

// 동점이면 저장(삽입) 순서가 유지된다.
func TestSearchStableTieOrder(t *testing.T) {
	repo := &fakeIncidentRepo{records: []model.IncidentRecord{
		record("FIRST", []float32{2, 0}),
		record("SECOND", []float32{5, 0}),
	}}
	svc := NewSearchService(repo, &fakeEmbedder{vector: []float32{1, 0}})

	results, err := svc.Search(context.Background(), "query", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].FlightID != "FIRST" || results[1].FlightID != "SECOND" {
		t.Fatalf("tie must keep insertion order, got %s then %s", results[0].FlightID, results[1].FlightID)
	}
}

func TestSearchSkipsZeroNormAndDimMismatch(t *testing.T) {
	repo := &fakeIncidentRepo{records: []model.IncidentRecord{
		record("ZERO", []float32{0, 0}),
		record("SHORT", []float32{1}),
		record("OK", []float32{1, 1}),
	}}
	svc := NewSearchService(repo, &fakeEmbedder{vector: []float32{1, 0}})

	results, err := svc.Search(context.Background(), "query", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].FlightID != "OK" {
		t.Fatalf("undefined similarities must be excluded, got %+v", results)
	}
}

// 단어 집합 기반 장난감 임베더. 실제 모델 없이 의미 근접성만 흉내낸다.
type bagOfWordsEmbedder struct {
	vocab []string
}

func (b *bagOfWordsEmbedder) EmbedText(ctx context.Context, text string) ([]float32, string, error) {
	vector := make([]float32, len(b.vocab))
	for i, word := range b.vocab {
		if strings.Contains(strings.ToLower(text), word) {
			vector[i] = 1
		}
	}
	return vector, "bag-of-words", nil
}

func TestSearchGlideSlopeScenario(t *testing.T) {
	embedder := &bagOfWordsEmbedder{vocab: []string{"glide", "slope", "terrain", "descend", "stall", "speed", "landing"}}
	ctx := context.Background()

	embedA, _, _ := embedder.EmbedText(ctx, "aircraft descended below glide slope into terrain on approach")
	embedB, _, _ := embedder.EmbedText(ctx, "low-speed stall during landing flare")

	repo := &fakeIncidentRepo{records: []model.IncidentRecord{
		{FlightID: "A", Summary: "descent below glide slope", Embedding: embedA},
		{FlightID: "B", Summary: "low-speed stall on landing", Embedding: embedB},
	}}
	svc := NewSearchService(repo, embedder)

	results, err := svc.Search(ctx, "aircraft descended below glide slope ignoring terrain warnings", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].FlightID != "A" {
		t.Fatalf("expected glide slope record to rank first, got %+v", results)
	}
}

func TestSearchEmbedderError(t *testing.T) {
	svc := NewSearchService(&fakeIncidentRepo{}, &fakeEmbedder{err: errors.New("provider down")})
	if _, err := svc.Search(context.Background(), "query", 0); err == nil {
		t.Fatalf("expected embedder error to propagate")
	}
}

func TestCosineSimilarity(t *testing.T) {
	if score, ok := cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}); !ok || math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("self similarity = %v, %v", score, ok)
	}

	ab, _ := cosineSimilarity([]float32{1, 0}, []float32{1, 1})
	ba, _ := cosineSimilarity([]float32{1, 1}, []float32{1, 0})
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("similarity must be symmetric: %v vs %v", ab, ba)
	}

	if _, ok := cosineSimilarity([]float32{0, 0}, []float32{1, 1}); ok {
		t.Fatalf("zero vector must be undefined")
	}
	if _, ok := cosineSimilarity([]float32{1}, []float32{1, 1}); ok {
		t.Fatalf("dimension mismatch must be undefined")
	}
	if _, ok := cosineSimilarity(nil, nil); ok {
		t.Fatalf("empty vectors must be undefined")
	}
}
