package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skycopilot/backend/internal/model"
	"github.com/skycopilot/backend/internal/service"
)

type SearchHandler struct {
	svc *service.SearchService
}

func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// SearchSimilarIncidents godoc
// @Summary Search similar historical incidents
// @Description Ranks stored incident records by cosine similarity against the query text.
// @Tags incidents
// @Produce json
// @Security BearerAuth
// @Param query query string true "Free-text query"
// @Param top_k query int false "Max results (default 3)"
// @Success 200 {object} model.SearchResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/similar-incidents [get]
func (h *SearchHandler) SearchSimilarIncidents(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "query is required"})
		return
	}

	topK := 0
	if raw := c.Query("top_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "top_k must be an integer"})
			return
		}
		topK = parsed
	}

	results, err := h.svc.Search(c.Request.Context(), query, topK)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.SearchResponse{Results: results})
}
