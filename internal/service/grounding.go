package service

import "strings"

// restrictedRegion - 운항 지역이 제한된 항공편의 허용/금지 지명 목록.
// 생성 모델은 물리적 지리에 묶여 있지 않아 수천 마일 밖 공항을 제안할 수
// 있으므로, 결정적 차단 목록으로 걸러낸다.
type restrictedRegion struct {
	name       string
	alternates []string
	denied     []string
	atcContact string
}

var marianaRegion = restrictedRegion{
	name: "Mariana Islands",
	alternates: []string{
		"A.B. Won Pat Guam International",
		"Andersen AFB",
		"Saipan International",
	},
	denied: []string{
		"san francisco", "oakland", "san jose", "sacramento", "los angeles",
		"honolulu", "amsterdam", "rotterdam", "eindhoven", "brussels",
		"tokyo", "seoul", "incheon", "manila",
	},
	atcContact: "Guam CERAP",
}

// 제한 지역이 선언된 항공편 테이블. 항목이 없는 항공편은 검증 대상이 아니다.
var restrictedFlights = map[string]restrictedRegion{
	"KAL801":       marianaRegion,
	"CRASH_KAL801": marianaRegion,
}

// ValidateGrounding - 생성된 텍스트에서 금지 지명을 대소문자 무시로 탐지한다.
// 탐지되면 텍스트 전체를 폐기하고 지역 내 유효 대안을 나열하는 고정 안전
// 문구로 교체한다. 안전 문구 자체는 금지 지명을 포함하지 않으므로 이 함수는
// 멱등하다.
func ValidateGrounding(flightID, generated string) string {
	region, ok := restrictedFlights[flightID]
	if !ok {
		return generated
	}

	lower := strings.ToLower(generated)
	for _, term := range region.denied {
		if strings.Contains(lower, term) {
			return region.safetyMessage()
		}
	}
	return generated
}

func (r restrictedRegion) safetyMessage() string {
	var b strings.Builder
	b.WriteString("RESTRICTED REGION ADVISORY\n")
	b.WriteString("Generated guidance referenced a location outside the " + r.name + " operating region and was discarded.\n")
	b.WriteString("Valid diversion options: " + strings.Join(r.alternates, ", ") + ".\n")
	b.WriteString("Contact " + r.atcContact + " for regional traffic control clearance.")
	return b.String()
}
