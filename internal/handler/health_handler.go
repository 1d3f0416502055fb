package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/neethishnk/hawkcards/pkg/logger"
)

// HealthCheck handles the health check endpoint. ?check=store pings the
// configured backend.
func (h *Handler) HealthCheck(c echo.Context) error {
	log := logger.FromContext(c)

	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	if c.QueryParam("check") == "store" && h.ping != nil {
		if err := h.ping(c.Request().Context()); err != nil {
			log.Error("Store ping error", zap.Error(err))
			response["status"] = "error"
			response["store_status"] = "error"
			return c.JSON(http.StatusServiceUnavailable, response)
		}
		response["store_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}
