package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/ensgo/base/ctx"
	"github.com/x-xyz/ensgo/base/delivery"
	hcdomain "github.com/x-xyz/ensgo/domain/healthcheck"
)

type healthCheckHandler struct {
	healthCheck hcdomain.HealthCheckUsecase
}

// New registers /health for liveness and /health/ready, which pings the
// chain and the shared cache.
func New(e *echo.Echo, us hcdomain.HealthCheckUsecase, mws ...echo.MiddlewareFunc) {
	handler := &healthCheckHandler{
		healthCheck: us,
	}
	g := e.Group("/health", mws...)
	g.GET("", handler.live)
	g.GET("/ready", handler.ready)
}

func (h *healthCheckHandler) live(c echo.Context) error {
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *healthCheckHandler) ready(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	if err := h.healthCheck.Check(ctx); err != nil {
		return delivery.MakeJsonResp(c, http.StatusServiceUnavailable, err.Error())
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ready")
}
