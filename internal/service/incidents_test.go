package service

import (
	"context"
	"testing"

	"github.com/skycopilot/backend/internal/model"
)

func TestStoreIncident(t *testing.T) {
	repo := &fakeIncidentRepo{}
	svc := NewIncidentService(repo, &fakeEmbedder{vector: []float32{0.1, 0.2}})

	modelName, err := svc.StoreIncident(context.Background(), model.StoreIncidentRequest{
		FlightID: "CRASH_AF447",
		Title:    "AF447",
		Summary:  "unreliable airspeed over the Atlantic",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if modelName != "text-embedding-004" {
		t.Fatalf("unexpected model name: %q", modelName)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.upserted))
	}
	if got := repo.upserted[0]; got.FlightID != "CRASH_AF447" || len(got.Embedding) != 2 {
		t.Fatalf("unexpected stored record: %+v", got)
	}
}

func TestStoreIncidentValidation(t *testing.T) {
	svc := NewIncidentService(&fakeIncidentRepo{}, &fakeEmbedder{vector: []float32{0.1}})

	for _, req := range []model.StoreIncidentRequest{
		{FlightID: "", Summary: "summary"},
		{FlightID: "KAL801", Summary: ""},
		{FlightID: "  ", Summary: "  "},
	} {
		if _, err := svc.StoreIncident(context.Background(), req); err == nil {
			t.Fatalf("expected validation error for %+v", req)
		}
	}
}

func TestStoreIncidentTrimsFields(t *testing.T) {
	repo := &fakeIncidentRepo{}
	svc := NewIncidentService(repo, &fakeEmbedder{vector: []float32{0.1}})

	if _, err := svc.StoreIncident(context.Background(), model.StoreIncidentRequest{
		FlightID: "  KAL801  ",
		Summary:  "  glide slope outage at Guam  ",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := repo.upserted[0]; got.FlightID != "KAL801" || got.Summary != "glide slope outage at Guam" {
		t.Fatalf("fields not trimmed: %+v", got)
	}
}
