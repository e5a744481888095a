package service

import (
	"strings"

	"github.com/skycopilot/backend/internal/model"
)

// emergency 키워드는 다른 모든 분류보다 우선한다.
var emergencyKeywords = []string{
	"emergency", "mayday", "pan pan", "crash", "impact", "terrain", "pull up",
	"warning", "alert", "failure", "malfunction", "system down", "engine out",
}

// intentPatterns - 선언 순서가 곧 동점 처리 규칙이다.
// 여러 카테고리가 동시에 매칭되면 먼저 선언된 카테고리가 이긴다.
// 순서를 바꾸면 분류 결과가 달라지므로 재정렬 금지.
var intentPatterns = []struct {
	intent   model.Intent
	keywords []string
}{
	{model.IntentDivertAirport, []string{
		"divert", "alternate", "nearest airport", "emergency landing", "landing gear",
		"runway", "approach", "landing", "touchdown",
	}},
	{model.IntentSimilarCrash, []string{
		"similar", "past incidents", "historical", "previous crash", "like this",
		"same situation", "what happened", "case study", "reference",
	}},
	{model.IntentSystemStatus, []string{
		"system status", "check systems", "instruments", "readings", "altitude",
		"speed", "fuel", "engine", "autopilot", "navigation", "radar", "weather",
	}},
	{model.IntentStatusUpdate, []string{
		"update", "current", "situation", "what's happening", "status",
		"how are we", "current flight", "position", "location",
	}},
}

// Classify - 파일럿 메시지를 intent로 분류 (대소문자 무시 부분 문자열 매칭)
// 어떤 키워드에도 매칭되지 않으면 status_update를 반환한다.
func Classify(message string) model.Intent {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return model.IntentStatusUpdate
	}

	for _, keyword := range emergencyKeywords {
		if strings.Contains(text, keyword) {
			return model.IntentEmergency
		}
	}

	for _, group := range intentPatterns {
		for _, keyword := range group.keywords {
			if strings.Contains(text, keyword) {
				return group.intent
			}
		}
	}

	return model.IntentStatusUpdate
}
