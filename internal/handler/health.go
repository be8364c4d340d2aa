package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Check probes one dependency.
type Check func(ctx context.Context) error

type HealthHandler struct {
	database Check
	redis    Check
}

type HealthCheckResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthHandler takes the database probe and an optional redis probe.
func NewHealthHandler(database, redis Check) *HealthHandler {
	return &HealthHandler{database: database, redis: redis}
}

// Ready reports 503 when the database is down. Redis is informational.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := HealthCheckResponse{
		Status:    "healthy",
		Version:   constants.AppVersion,
		Timestamp: time.Now(),
		Checks:    make(map[string]HealthCheck),
	}

	db := probe(ctx, "database", h.database)
	response.Checks["database"] = db
	if db.Status != "healthy" {
		response.Status = "unhealthy"
	}

	if h.redis == nil {
		response.Checks["redis"] = HealthCheck{Status: "disabled", Message: "Redis is disabled"}
	} else {
		response.Checks["redis"] = probe(ctx, "redis", h.redis)
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	logger.GetLogger().Debug("Health check performed",
		zap.String("overall_status", response.Status),
		zap.Int("status_code", statusCode),
	)

	c.JSON(statusCode, response)
}

// BasicHealth is the load balancer probe.
func (h *HealthHandler) BasicHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   constants.AppName,
		"version":   constants.AppVersion,
		"timestamp": time.Now(),
	})
}

func probe(ctx context.Context, name string, check Check) HealthCheck {
	if check == nil {
		return HealthCheck{Status: "unhealthy", Message: name + " not initialized"}
	}
	if err := check(ctx); err != nil {
		logger.GetLogger().Warn("Health probe failed", zap.String("dependency", name), zap.Error(err))
		return HealthCheck{Status: "unhealthy", Message: name + " ping failed"}
	}
	return HealthCheck{Status: "healthy"}
}
