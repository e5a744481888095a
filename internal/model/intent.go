package model

// Intent - 파일럿 메시지 분류 결과 (닫힌 집합)
type Intent string

const (
	IntentEmergency     Intent = "emergency"
	IntentDivertAirport Intent = "divert_airport"
	IntentSimilarCrash  Intent = "similar_crashes"
	IntentSystemStatus  Intent = "system_status"
	IntentStatusUpdate  Intent = "status_update"
)

// Intents - 전체 intent 목록 (템플릿/폴백 테이블 검증용)
var Intents = []Intent{
	IntentEmergency,
	IntentDivertAirport,
	IntentSimilarCrash,
	IntentSystemStatus,
	IntentStatusUpdate,
}

func (i Intent) String() string {
	return string(i)
}
