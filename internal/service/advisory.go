// 조언 파이프라인 비즈니스 로직 정의
//
// 처리 흐름:
//  1. 메시지 분류 (Classify)
//  2. (flight_id, intent)로 템플릿 조합 (template.Registry)
//  3. 타임아웃 내 생성 백엔드 호출, 실패 시 폴백 (invoke)
//  4. 제한 지역 검증 (ValidateGrounding)

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/skycopilot/backend/internal/model"
	"github.com/skycopilot/backend/internal/template"
)

var ErrInvalidAdvisoryRequest = errors.New("invalid advisory request")

// Generator - 생성 백엔드 경계. 느리거나 실패할 수 있다고 가정한다.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

type AdvisoryService struct {
	registry  *template.Registry
	generator Generator
	timeout   time.Duration
}

func NewAdvisoryService(registry *template.Registry, generator Generator, timeout time.Duration) *AdvisoryService {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AdvisoryService{registry: registry, generator: generator, timeout: timeout}
}

// Advise - 파이프라인 전체를 실행한다. 입력 필드 누락 외의 어떤 실패도
// 호출자에게 에러로 전파되지 않는다. 생성이 실패하면 폴백 문구가
// Degraded=true로 반환된다 (조언 시스템은 항상 응답해야 한다).
func (s *AdvisoryService) Advise(ctx context.Context, req model.AdvisoryRequest) (*model.AdvisoryResponse, error) {
	flightID := strings.TrimSpace(req.FlightID)
	message := strings.TrimSpace(req.Message)
	if flightID == "" || message == "" {
		return nil, fmt.Errorf("%w: flight_id and message are required", ErrInvalidAdvisoryRequest)
	}

	intent := Classify(message)
	tmpl := s.registry.Resolve(flightID, intent)
	system, user := template.Fill(tmpl, flightID, message)

	advice, degraded := s.invoke(ctx, system, user, flightID, intent)
	advice = ValidateGrounding(flightID, advice)

	return &model.AdvisoryResponse{
		Status:   "success",
		Advice:   advice,
		Intent:   intent.String(),
		FlightID: flightID,
		Degraded: degraded,
	}, nil
}

// invoke - 생성 호출은 파이프라인의 유일한 대기 지점이다.
// 타임아웃이 지나면 폴백을 반환하고, 늦게 도착한 결과는 버퍼 채널에
// 쓰인 뒤 버려진다 (고루틴 누수 없음).
func (s *AdvisoryService) invoke(ctx context.Context, system, user, flightID string, intent model.Intent) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		text, err := s.generator.Generate(ctx, system, user)
		ch <- result{text: text, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil || strings.TrimSpace(res.text) == "" {
			log.Printf("advisory generation failed (flight_id=%s, intent=%s): %v", flightID, intent, res.err)
			return FallbackMessage(flightID, intent), true
		}
		return res.text, false
	case <-ctx.Done():
		log.Printf("advisory generation timed out after %s (flight_id=%s, intent=%s)", s.timeout, flightID, intent)
		return FallbackMessage(flightID, intent), true
	}
}
