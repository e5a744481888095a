// Package template holds the advisory prompt registry.
//
// 프롬프트는 (intent 기본 템플릿) + (flight별 컨텍스트 조각) 데이터 조합으로
// 구성된다. 새 항공편 추가는 flightFragments에 데이터 항목을 넣는 것으로
// 끝나며 코드 경로가 늘어나지 않는다.
//
// 지원하는 변수 형식:
//
//	{{flight_id}}, {{message}}
package template

import (
	"fmt"
	"strings"

	"github.com/skycopilot/backend/internal/model"
)

// Template - 생성 백엔드에 제출할 시스템 컨텍스트와 사용자 메시지 슬롯
type Template struct {
	System string
	User   string
}

// intent별 기본(와일드카드) 템플릿. 모든 intent에 항목이 있어야 하며
// 누락은 기동 시점 설정 오류로 처리된다.
var intentBases = map[model.Intent]Template{
	model.IntentEmergency: {
		System: `You are an AI copilot in a CRITICAL EMERGENCY situation for flight {{flight_id}}.
Respond with URGENT, IMMEDIATE actions only. Use CAPS for critical warnings.

## Emergency Response Format:
CRITICAL EMERGENCY
IMMEDIATE ACTION REQUIRED:
[Specific action in CAPS]

EMERGENCY PROCEDURES:
1. [Step 1]
2. [Step 2]
3. [Step 3]

CONTACT ATC IMMEDIATELY`,
		User: "Flight ID: {{flight_id}}\nEmergency Message: {{message}}",
	},
	model.IntentDivertAirport: {
		System: `You are an AI copilot assisting with airport diversion for flight {{flight_id}}.
Provide specific airport recommendations and approach procedures.

## Response Format:
DIVERSION RECOMMENDATION:
[Recommended airport with distance and approach type]

APPROACH PROCEDURES:
- Runway: [specific runway]
- Approach: [ILS/VOR/Visual]
- Minimums: [ceiling/visibility]

ALTERNATIVES:
[List of backup airports]`,
		User: "Flight ID: {{flight_id}}\nDiversion Request: {{message}}",
	},
	model.IntentSimilarCrash: {
		System: `You are an AI copilot providing historical crash analysis for flight {{flight_id}}.
Reference relevant past incidents and lessons learned.

## Response Format:
HISTORICAL REFERENCE:
[Relevant past incident with key factors]

LESSONS LEARNED:
- [Lesson 1]
- [Lesson 2]
- [Lesson 3]

APPLICABLE PROCEDURES:
[Specific procedures from historical incident]`,
		User: "Flight ID: {{flight_id}}\nHistorical Query: {{message}}",
	},
	model.IntentSystemStatus: {
		System: `You are an AI copilot providing system status analysis for flight {{flight_id}}.
Focus on instrument readings, system health, and operational status.

## Response Format:
SYSTEM STATUS:
- Altitude: [current reading]
- Speed: [current reading]
- Navigation: [status]
- Engines: [status]

INSTRUMENT CHECKLIST:
- Primary instruments
- Backup instruments
- Warning systems
- Communication systems

RECOMMENDATIONS:
[Specific system-related actions]`,
		User: "Flight ID: {{flight_id}}\nSystem Query: {{message}}",
	},
	model.IntentStatusUpdate: {
		System: `You are an AI copilot trained for aviation emergency support.
Respond to pilot queries with clear, urgent, and structured advice when risks are detected.

## Response Guidelines:
- If there's a known risk or emergency keyword detected, START WITH A CRITICAL ALERT.
- Use clear headlines like CRITICAL SITUATION, URGENT RECOMMENDATION (no markdown formatting)
- Include only the most essential flight data (altitude, health, weather) and keep it concise
- Prioritize crew safety. Do NOT sound passive or unsure.
- Use CAPS for critical warnings and immediate actions
- Structure response with: System Status, then Urgent Recommendation, then Next Steps
- Reference historical incidents when relevant (e.g., "Similar to KAL801 Guam crash - immediate terrain pull-up required")
- Avoid using ** or * markdown formatting - use plain text instead

Respond based on this flight ID and query.`,
		User: "Flight ID: {{flight_id}}\nPilot Message: {{message}}",
	},
}

// flightFragments - (항공편, intent)별 추가 컨텍스트 조각.
// 해당 항목이 없으면 intent 기본 템플릿만 사용한다 (와일드카드 매칭).
var flightFragments = map[string]map[model.Intent]string{
	"KAL801": {
		model.IntentEmergency:     "KAL801: Terrain proximity, glide slope failure, Guam approach.",
		model.IntentDivertAirport: "KAL801: Guam area - consider A.B. Won Pat Guam International, Andersen AFB, Saipan International.",
		model.IntentSimilarCrash:  "KAL801: 1997 Guam crash - terrain proximity, glide slope failure.",
		model.IntentSystemStatus:  "KAL801: Monitor glide slope, altimeter, terrain warning systems.",
		model.IntentStatusUpdate: `KAL801: Known terrain proximity issues, descent below glide slope, mountainous approach.
Current telemetry: altitude 3000 ft, speed 210 kt, gear retracted, nearest runway Guam Intl RWY06L 3 NM ahead, glide slope below optimal, terrain warning ACTIVE.
Emphasize terrain proximity, immediate go-around, altitude management, glideslope verification, crew cross-checks.`,
	},
	"CRASH_KAL801": {
		model.IntentEmergency:     "CRASH_KAL801: Terrain proximity, glide slope failure, Guam approach.",
		model.IntentDivertAirport: "CRASH_KAL801: Guam area - consider A.B. Won Pat Guam International, Andersen AFB, Saipan International.",
		model.IntentSimilarCrash:  "CRASH_KAL801: Korean Air Flight 801 (1997) - controlled flight into terrain on Guam approach due to descent below minimum safe altitude, non-functional glideslope, and poor crew resource management. 229 fatalities, 25 survivors.",
		model.IntentSystemStatus:  "CRASH_KAL801: Monitor glide slope, altimeter, terrain warning systems.",
		model.IntentStatusUpdate: `CRASH_KAL801: Korean Air Flight 801 (August 6, 1997, Guam International Airport).
Primary cause: pilot error and navigational aid failure. Key factors: non-precision approach with out-of-service glideslope, descent below minimum safe altitude, captain fatigue, misinterpretation of navigation signals.
Copilot response: detect descent below safe altitude, issue immediate terrain pull-up alert, prompt for missed approach when glideslope signal weak or absent, enforce crew cross-checks.`,
	},
	"CRASH_THY1951": {
		model.IntentEmergency:     "CRASH_THY1951: Faulty radio altimeter cut autothrottle to idle, stall on Amsterdam approach.",
		model.IntentDivertAirport: "CRASH_THY1951: Amsterdam area - consider Rotterdam, Eindhoven, Brussels.",
		model.IntentSimilarCrash:  "CRASH_THY1951: Turkish Airlines Flight 1951 (2009) - faulty radio altimeter triggered autothrottle to cut engine power to idle, resulting in aerodynamic stall on approach to Amsterdam. 9 fatalities, 126 survivors.",
		model.IntentSystemStatus:  "CRASH_THY1951: Check radio altimeter, autopilot, approach systems.",
		model.IntentStatusUpdate: `CRASH_THY1951: Turkish Airlines Flight 1951 (February 25, 2009, near Amsterdam Schiphol).
Primary cause: faulty radio altimeter and pilot error. Key factors: faulty left radio altimeter, autothrottle reduced thrust to idle, high pilot workload, improper stall recovery.
Focus on radio altimeter cross-checking, autothrottle monitoring, airspeed awareness, stall recovery procedures, immediate thrust application.`,
	},
	"CRASH_AAR214": {
		model.IntentEmergency:     "CRASH_AAR214: Low-speed visual approach, autothrottle disengaged, San Francisco.",
		model.IntentDivertAirport: "CRASH_AAR214: San Francisco area - consider Oakland, San Jose, Sacramento.",
		model.IntentSimilarCrash:  "CRASH_AAR214: Asiana Airlines Flight 214 (2013) - low-speed approach due to autothrottle disengagement and inadequate pilot monitoring during visual approach to San Francisco. 3 fatalities, 304 survivors.",
		model.IntentSystemStatus:  "CRASH_AAR214: Check autothrottle status, airspeed indicators, approach configuration.",
		model.IntentStatusUpdate:  "CRASH_AAR214: Asiana Airlines Flight 214 (2013, San Francisco). Highlight approach speed monitoring, landing gear verification, manual landing procedures.",
	},
	"CRASH_COLGAN3407": {
		model.IntentSimilarCrash: "CRASH_COLGAN3407: Colgan Air Flight 3407 (2009) - stall on approach to Buffalo due to inadequate airspeed monitoring, violation of sterile cockpit rules, and improper stall recovery response. 49 fatalities, 0 survivors.",
		model.IntentStatusUpdate: `CRASH_COLGAN3407: Colgan Air Flight 3407 (February 12, 2009, Clarence Center, New York).
Primary cause: inappropriate response to impending stall (pulled back on controls instead of proper recovery).
Focus on airspeed monitoring during approach, stall prevention, sterile cockpit enforcement, proper stall recovery procedures, icing condition awareness.`,
	},
	"CRASH_AF447": {
		model.IntentSimilarCrash: "CRASH_AF447: Air France Flight 447 (2009) - high-altitude stall over the Atlantic due to iced pitot tubes causing unreliable airspeed, autopilot disconnect, and improper pilot control inputs. 228 fatalities, 0 survivors.",
		model.IntentStatusUpdate: `CRASH_AF447: Air France Flight 447 (June 1, 2009, Atlantic Ocean).
Primary cause: aerodynamic stall due to pilot error after ice crystals blocked pitot tubes.
Focus on pitot tube icing detection, unreliable airspeed procedures, high-altitude stall prevention, alternative airspeed calculations, autopilot management during sensor failures.`,
	},
	"TURKISH1951": {
		model.IntentEmergency:     "TURKISH1951: Radio altimeter failure, autopilot mismanagement, approach speed issues.",
		model.IntentDivertAirport: "TURKISH1951: Amsterdam area - consider Rotterdam, Eindhoven, Brussels.",
		model.IntentSimilarCrash:  "TURKISH1951: 2009 Amsterdam crash - radio altimeter, autopilot issues.",
		model.IntentSystemStatus:  "TURKISH1951: Check radio altimeter, autopilot, approach systems.",
		model.IntentStatusUpdate: `TURKISH1951: Radio altimeter failure, autopilot mismanagement, approach speed issues.
Current telemetry: altitude 800 ft, gear extended, nearest runway Schiphol RWY18R 1.2 NM, radio altimeter FAULTY, autopilot glide locked.
Focus on radio altimeter backup procedures, manual approach, speed control.`,
	},
	"ASIANA214": {
		model.IntentEmergency:     "ASIANA214: Low-speed manual approach failure, poor pilot monitoring, landing gear issues.",
		model.IntentDivertAirport: "ASIANA214: San Francisco area - consider Oakland, San Jose, Sacramento.",
		model.IntentSimilarCrash:  "ASIANA214: 2013 San Francisco crash - low-speed approach, crew monitoring.",
		model.IntentSystemStatus:  "ASIANA214: Verify speed indicators, landing gear, auto-throttle.",
		model.IntentStatusUpdate:  "ASIANA214: Low-speed manual approach failure, poor pilot monitoring, landing gear issues. Highlight approach speed monitoring, landing gear verification, manual landing procedures.",
	},
}

// Registry - (flight_id, intent) -> Template 조회 테이블. 읽기 전용.
type Registry struct {
	bases     map[model.Intent]Template
	fragments map[string]map[model.Intent]string
}

// NewRegistry - 모든 intent에 기본 템플릿이 있는지 기동 시점에 검증한다.
// 누락 시 설정 불변식 위반이므로 에러를 반환한다 (요청 시점에 실패하지 않도록).
func NewRegistry() (*Registry, error) {
	for _, intent := range model.Intents {
		base, ok := intentBases[intent]
		if !ok || base.System == "" || base.User == "" {
			return nil, fmt.Errorf("missing base template for intent %q", intent)
		}
	}
	return &Registry{bases: intentBases, fragments: flightFragments}, nil
}

// Resolve - (flight_id, intent) 조합으로 템플릿을 조합한다.
// flight별 조각이 있으면 기본 템플릿에 병합하고, 없으면 기본 템플릿을
// 그대로 반환한다. 어떤 입력에도 실패하지 않는다.
func (r *Registry) Resolve(flightID string, intent model.Intent) Template {
	base, ok := r.bases[intent]
	if !ok {
		base = r.bases[model.IntentStatusUpdate]
	}

	fragment := ""
	if perIntent, ok := r.fragments[flightID]; ok {
		fragment = perIntent[intent]
	}
	if fragment == "" {
		return base
	}

	return Template{
		System: base.System + "\n\n## Flight-Specific Context:\n" + fragment,
		User:   base.User,
	}
}

// Fill - 템플릿 슬롯을 실제 값으로 치환한다.
func Fill(t Template, flightID, message string) (system, user string) {
	replacer := strings.NewReplacer(
		"{{flight_id}}", flightID,
		"{{message}}", message,
	)
	return replacer.Replace(t.System), replacer.Replace(t.User)
}
