package service

import "github.com/skycopilot/backend/internal/model"

// 생성 백엔드가 실패하거나 타임아웃일 때 내보내는 항공편별 고정 응답.
// 프로세스 전역 읽기 전용 테이블.
var flightFallbacks = map[string]string{
	"KAL801":           "CRITICAL TERRAIN ALERT\nFlight KAL801 is descending below glide slope near Guam. Initiate an immediate go-around. Monitor altitude closely and cross-check terrain avoidance systems.",
	"CRASH_KAL801":     "HISTORICAL KAL801 REFERENCE\nThis flight pattern matches Korean Air Flight 801 (1997 Guam crash). Immediate terrain pull-up required. Verify glideslope status and initiate missed approach procedures.",
	"CRASH_THY1951":    "STALL ALERT: Faulty altitude reading detected. Add thrust immediately and prepare for go-around! Cross-check radio altimeters and monitor airspeed closely.",
	"CRASH_AAR214":     "LOW SPEED APPROACH WARNING\nFlight 214 is approaching SFO at dangerously low speed. Check autothrottle status and increase thrust immediately. Visual approach monitoring required.",
	"CRASH_COLGAN3407": "STALL WARNING\nAirspeed decaying on approach. Lower the nose, apply full thrust, and execute stall recovery now. Maintain sterile cockpit until stabilized.",
	"CRASH_AF447":      "UNRELIABLE AIRSPEED\nSuspected pitot icing. Set pitch and thrust per unreliable airspeed procedure and cross-check remaining sensors. Do not chase indicated airspeed.",
	"TURKISH1951":      "AUTOPILOT MALFUNCTION\nFlight 1951 shows radio altimeter discrepancies. Disengage autopilot, manually stabilize descent, and confirm altitude using backup instruments.",
	"ASIANA214":        "LOW SPEED APPROACH WARNING\nFlight 214 is approaching SFO at dangerously low speed. Increase thrust and adjust pitch angle immediately. Visual confirmation advised.",
}

const genericFallback = "AI Copilot temporarily unavailable. Refer to emergency checklist."

// FallbackMessage - (flight_id, intent)에 대한 폴백 문구.
// intent별 접두어로 저하(degraded) 응답임을 구분할 수 있게 한다.
// 전 조합에 대해 항상 문구를 반환한다 (전역 기본값 포함).
func FallbackMessage(flightID string, intent model.Intent) string {
	base, ok := flightFallbacks[flightID]
	if !ok {
		base = genericFallback
	}

	switch intent {
	case model.IntentEmergency:
		return "EMERGENCY FALLBACK: " + base
	case model.IntentDivertAirport:
		return "DIVERSION FALLBACK: " + base + " - Contact ATC for nearest suitable airport."
	case model.IntentSimilarCrash:
		return "HISTORICAL FALLBACK: " + base + " - Review emergency procedures for similar incidents."
	case model.IntentSystemStatus:
		return "SYSTEM FALLBACK: " + base + " - Check all primary and backup instruments."
	default:
		return base
	}
}
