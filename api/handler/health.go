package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskapi/internal/infrastructure/monitor"
	"github.com/fastygo/taskapi/pkg/httpcontext"
)

// StatusSource is satisfied by *monitor.Monitor.
type StatusSource interface {
	Status() monitor.Status
}

type HealthHandler struct {
	baseHandler
	monitor StatusSource
}

func NewHealthHandler(mon StatusSource, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.Status()
	payload := map[string]interface{}{
		"status": "ok",
		"store":  status,
	}
	if !status.Online {
		payload["status"] = "degraded"
		h.respondJSON(ctx, http.StatusServiceUnavailable, payload)
		return
	}
	h.respondJSON(ctx, http.StatusOK, payload)
}
