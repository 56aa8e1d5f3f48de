package handlers

import (
	"context"
	"net/http"
	"time"

	"go-echo-starwars/internal/database"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const redisCheckTimeout = 2 * time.Second

type HealthHandler struct {
	db    *gorm.DB
	redis asynq.RedisConnOpt
}

// NewHealthHandler checks Redis only when redis is non-nil.
func NewHealthHandler(db *gorm.DB, redis asynq.RedisConnOpt) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func (h *HealthHandler) Check(c echo.Context) error {
	ctx := c.Request().Context()

	dbStatus := "healthy"
	if err := database.CheckHealth(ctx, h.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if h.redis != nil {
		redisStatus = "healthy"
		if err := h.checkRedis(ctx); err != nil {
			redisStatus = "unhealthy"
		}
	}

	overallStatus := "healthy"
	statusCode := http.StatusOK
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		overallStatus = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, HealthResponse{
		Status:   overallStatus,
		Database: dbStatus,
		Redis:    redisStatus,
	})
}

func (h *HealthHandler) checkRedis(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, redisCheckTimeout)
	defer cancel()

	// The goroutine owns the inspector so a timed out check never closes it
	// under a running Queues call.
	done := make(chan error, 1)
	go func() {
		inspector := asynq.NewInspector(h.redis)
		defer inspector.Close()

		_, err := inspector.Queues()
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
