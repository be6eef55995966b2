package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/denr-tlph/licensing-api/internal/config"
)

// HealthCheck godoc
// @Summary Health check
// @Description Reports service health along with backing store connectivity
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	services := map[string]string{}
	healthy := true

	if config.MongoDB != nil {
		if err := config.MongoDB.Client().Ping(ctx, readpref.Primary()); err != nil {
			services["mongodb"] = "unhealthy"
			healthy = false
		} else {
			services["mongodb"] = "healthy"
		}
	} else {
		services["mongodb"] = "not configured"
		healthy = false
	}

	if config.Redis != nil {
		if err := config.Redis.Ping(ctx).Err(); err != nil {
			services["redis"] = "unhealthy"
			healthy = false
		} else {
			services["redis"] = "healthy"
		}
	} else {
		services["redis"] = "not configured"
		healthy = false
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services:  services,
	})
}
