package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skycopilot/backend/internal/model"
	"github.com/skycopilot/backend/internal/service"
)

type IncidentHandler struct {
	svc *service.IncidentService
}

func NewIncidentHandler(svc *service.IncidentService) *IncidentHandler {
	return &IncidentHandler{svc: svc}
}

// StoreIncident godoc
// @Summary Ingest a historical incident record
// @Description Embeds the incident summary and upserts the record by flight ID (re-ingestion replaces).
// @Tags incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.StoreIncidentRequest true "Incident record payload"
// @Success 200 {object} model.StoreIncidentResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents [post]
func (h *IncidentHandler) StoreIncident(c *gin.Context) {
	var req model.StoreIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}

	modelName, err := h.svc.StoreIncident(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.StoreIncidentResponse{
		Status:   "success",
		FlightID: req.FlightID,
		Model:    modelName,
	})
}

// ListIncidents godoc
// @Summary List stored incident records
// @Tags incidents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.IncidentListEnvelope
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/incidents [get]
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	list, err := h.svc.ListIncidents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.IncidentListEnvelope{Status: "success", Data: list})
}
