package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/skycopilot/backend/internal/model"
	"github.com/skycopilot/backend/internal/service"
	"github.com/skycopilot/backend/internal/template"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	return s.text, s.err
}

func newAdvisoryRouter(t *testing.T, gen service.Generator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry, err := template.NewRegistry()
	if err != nil {
		t.Fatalf("registry init failed: %v", err)
	}
	svc := service.NewAdvisoryService(registry, gen, time.Second)

	r := gin.New()
	r.POST("/api/v1/advisory", NewAdvisoryHandler(svc).Advise)
	return r
}

func TestAdvisoryHandlerValidation(t *testing.T) {
	r := newAdvisoryRouter(t, &stubGenerator{text: "ok"})

	for _, body := range []string{
		`{"flight_id":"","message":""}`,
		`{"flight_id":"KAL801"}`,
		`{"message":"mayday"}`,
		`not json`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/advisory", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}

func TestAdvisoryHandlerSuccess(t *testing.T) {
	r := newAdvisoryRouter(t, &stubGenerator{text: "Maintain heading and climb."})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisory",
		bytes.NewBufferString(`{"flight_id":"ASIANA214","message":"MAYDAY engine failure"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var resp model.AdvisoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp.Status != "success" || resp.Intent != "emergency" || resp.Degraded {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

// 생성 실패는 200 + 폴백으로 응답한다. 5xx가 아니다.
func TestAdvisoryHandlerDegradedStillOK(t *testing.T) {
	r := newAdvisoryRouter(t, &stubGenerator{err: context.DeadlineExceeded})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/advisory",
		bytes.NewBufferString(`{"flight_id":"KAL801","message":"MAYDAY"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp model.AdvisoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if !resp.Degraded {
		t.Fatalf("expected degraded fallback response, got %+v", resp)
	}
}
