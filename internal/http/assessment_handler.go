package http

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-path/internal/service"
)

// AssessmentHandler mantiene dependencias para los endpoints de evaluacion.
type AssessmentHandler struct {
	logger  *zap.Logger
	scoring *service.ScoringService
	pathway *service.PathwayService
	limiter service.RateLimiter
}

// NewAssessmentHandler crea una instancia de AssessmentHandler con dependencias necesarias.
func NewAssessmentHandler(logger *zap.Logger, scoring *service.ScoringService, pathway *service.PathwayService, limiter service.RateLimiter) *AssessmentHandler {
	return &AssessmentHandler{
		logger:  logger,
		scoring: scoring,
		pathway: pathway,
		limiter: limiter,
	}
}

// Score maneja POST /assessments/score.
func (h *AssessmentHandler) Score(c *gin.Context) {
	var req service.ScoringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid scoring request", zap.Error(err))
		c.JSON(http.StatusBadRequest, service.ErrorResult(err))
		return
	}
	if !h.limit(c, service.ScopeScore, req.Username) {
		return
	}

	res, err := h.scoring.Score(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Pathway maneja POST /careers/pathway.
func (h *AssessmentHandler) Pathway(c *gin.Context) {
	var req service.PathwayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid pathway request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !h.limit(c, service.ScopePathway, req.Username) {
		return
	}

	resp, err := h.pathway.Evaluate(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// rateSubject prefiere el cliente del JWT, despues el usuario y por ultimo la IP.
func rateSubject(c *gin.Context, username string) string {
	if claims, ok := GetAuthClaims(c); ok && claims.ClientID != "" {
		return "client:" + claims.ClientID
	}
	if u := strings.TrimSpace(username); u != "" {
		return "user:" + u
	}
	return "ip:" + c.ClientIP()
}

// limit cuenta el pedido y responde 429 si se paso del cupo.
func (h *AssessmentHandler) limit(c *gin.Context, scope, username string) bool {
	if h.limiter == nil {
		return true
	}
	d := h.limiter.Allow(c.Request.Context(), scope, rateSubject(c, username))
	if d.Allowed {
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		return true
	}
	retry := int(math.Ceil(d.RetryAfter.Seconds()))
	c.Header("Retry-After", strconv.Itoa(retry))
	c.JSON(http.StatusTooManyRequests, gin.H{"error": service.ErrRateLimited.Error(), "retry_after": retry})
	return false
}
