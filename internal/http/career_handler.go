package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-path/internal/service"
)

// CareerHandler mantiene dependencias para clasificacion y ranking de roles.
type CareerHandler struct {
	logger          *zap.Logger
	clusters        *service.ClusterService
	recommendations *service.RecommendationService
}

// NewCareerHandler crea una instancia de CareerHandler con dependencias necesarias.
func NewCareerHandler(logger *zap.Logger, clusters *service.ClusterService, recommendations *service.RecommendationService) *CareerHandler {
	return &CareerHandler{
		logger:          logger,
		clusters:        clusters,
		recommendations: recommendations,
	}
}

// Cluster maneja POST /careers/cluster.
func (h *CareerHandler) Cluster(c *gin.Context) {
	var req service.ClusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid cluster request", zap.Error(err))
		c.JSON(http.StatusBadRequest, service.ClusterResponse{Error: "invalid request"})
		return
	}
	resp := h.clusters.Predict(c.Request.Context(), req)
	if !resp.Success {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recommend maneja POST /careers/recommend.
func (h *CareerHandler) Recommend(c *gin.Context) {
	var req service.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid recommendation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, service.RecommendationResponse{Error: "invalid request"})
		return
	}
	resp := h.recommendations.Recommend(c.Request.Context(), req)
	if !resp.Success {
		status := http.StatusNotFound
		if resp.Error == service.ErrIndexNotLoaded.Error() {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
