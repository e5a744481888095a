package model

type AdvisoryRequest struct {
	FlightID string `json:"flight_id" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// AdvisoryResponse - Degraded=true면 생성 실패/타임아웃으로 폴백 문구가 반환된 경우
type AdvisoryResponse struct {
	Status   string `json:"status"`
	Advice   string `json:"advice"`
	Intent   string `json:"intent"`
	FlightID string `json:"flight_id"`
	Degraded bool   `json:"degraded"`
}
