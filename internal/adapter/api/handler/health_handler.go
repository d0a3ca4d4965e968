package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/repository"
	"storefront/pkg/logger"
)

type HealthHandler struct {
	store repository.HealthChecker
}

func NewHealthHandler(store repository.HealthChecker) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		logger.Error("health check failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "store unreachable",
			"time":   time.Now().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
