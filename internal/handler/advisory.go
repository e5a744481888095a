package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skycopilot/backend/internal/model"
	"github.com/skycopilot/backend/internal/service"
)

type AdvisoryHandler struct {
	svc *service.AdvisoryService
}

func NewAdvisoryHandler(svc *service.AdvisoryService) *AdvisoryHandler {
	return &AdvisoryHandler{svc: svc}
}

// Advise godoc
// @Summary Get copilot advisory for a pilot message
// @Description Classifies the message intent, routes it to a flight-specific prompt and returns generated (or fallback) advice.
// @Tags advisory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.AdvisoryRequest true "Flight ID and pilot message"
// @Success 200 {object} model.AdvisoryResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/advisory [post]
func (h *AdvisoryHandler) Advise(c *gin.Context) {
	var req model.AdvisoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.svc.Advise(c.Request.Context(), req)
	if err != nil {
		// 파이프라인 설계상 필드 누락 외의 에러는 여기 도달하지 않는다
		if errors.Is(err, service.ErrInvalidAdvisoryRequest) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
