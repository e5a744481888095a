package model

import "time"

// ============================================================================
// IncidentRecord 모델 (과거 사고 기록 단위)
// ============================================================================

// IncidentRecord - 저장된 과거 사고 기록 (임베딩 포함)
// flight_id가 고유 키이며 재수집 시 교체(upsert)된다.
type IncidentRecord struct {
	FlightID  string         `json:"flight_id"`
	Title     string         `json:"title"`
	Summary   string         `json:"summary"`
	Metadata  map[string]any `json:"metadata,omitempty" swaggertype:"object"`
	Embedding []float32      `json:"-"`
	Model     string         `json:"model,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitzero"`
}

// IncidentListItem - 목록 조회용 (임베딩 제외)
type IncidentListItem struct {
	FlightID  string    `json:"flight_id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

type StoreIncidentRequest struct {
	FlightID string         `json:"flight_id" binding:"required"`
	Title    string         `json:"title"`
	Summary  string         `json:"summary" binding:"required"`
	Metadata map[string]any `json:"metadata" swaggertype:"object"`
}

type StoreIncidentResponse struct {
	Status   string `json:"status"`
	FlightID string `json:"flight_id"`
	Model    string `json:"model"`
}

// ============================================================================
// 유사 사고 검색 모델
// ============================================================================

// SimilarityResult - 코사인 유사도 [-1,1] 기준 검색 결과 한 건
type SimilarityResult struct {
	FlightID   string  `json:"flight_id"`
	Summary    string  `json:"summary"`
	Similarity float64 `json:"similarity"`
}

type SearchResponse struct {
	Results []SimilarityResult `json:"results"`
}
