package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/skycopilot/backend/internal/model"
)

const defaultTopK = 3

// IncidentRepo - 사고 기록 저장소 경계. GetAllIncidents는 스캔 시작 시점의
// 일관된 스냅샷을 삽입 순서대로 반환해야 한다.
type IncidentRepo interface {
	UpsertIncident(ctx context.Context, record model.IncidentRecord) error
	GetAllIncidents(ctx context.Context) ([]model.IncidentRecord, error)
	ListIncidents(ctx context.Context) ([]model.IncidentListItem, error)
}

// EmbeddingClient - 임베딩 공급자 경계. 설정된 차원의 벡터를 반환하거나
// 명시적으로 실패해야 한다.
type EmbeddingClient interface {
	EmbedText(ctx context.Context, text string) ([]float32, string, error)
}

type SearchService struct {
	repo     IncidentRepo
	embedder EmbeddingClient
}

func NewSearchService(repo IncidentRepo, embedder EmbeddingClient) *SearchService {
	return &SearchService{repo: repo, embedder: embedder}
}

// Search - 질의 텍스트를 임베딩한 뒤 저장소 전체를 선형 스캔해 코사인
// 유사도 내림차순 상위 topK건을 반환한다. O(N*D). 빈 저장소는 빈 결과이지
// 에러가 아니다.
//
// 정렬은 안정 정렬이며 동점은 스냅샷(삽입) 순서를 유지한다. 같은 저장소
// 상태에 같은 질의를 반복하면 항상 같은 순서가 나온다.
func (s *SearchService) Search(ctx context.Context, query string, topK int) ([]model.SimilarityResult, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	queryVec, _, err := s.embedder.EmbedText(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, err
	}

	records, err := s.repo.GetAllIncidents(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]model.SimilarityResult, 0, len(records))
	for _, record := range records {
		score, ok := cosineSimilarity(queryVec, record.Embedding)
		if !ok {
			// 영벡터나 차원 불일치는 유사도가 정의되지 않으므로 순위에서 제외
			continue
		}
		results = append(results, model.SimilarityResult{
			FlightID:   record.FlightID,
			Summary:    record.Summary,
			Similarity: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// cosineSimilarity - dot(a,b) / (‖a‖·‖b‖). 차원이 다르거나 어느 한쪽이
// 영벡터면 ok=false.
func cosineSimilarity(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
