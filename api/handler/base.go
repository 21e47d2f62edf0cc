package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskapi/domain"
	"github.com/fastygo/taskapi/pkg/httpcontext"
	"github.com/fastygo/taskapi/pkg/logger"
)

const notFoundBody = "not found"

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("encode response", zap.Error(err))
		h.respondText(ctx, http.StatusInternalServerError, "encode response: "+err.Error())
		return
	}
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func (h baseHandler) respondText(ctx *fasthttp.RequestCtx, status int, msg string) {
	ctx.Response.Header.SetContentType("text/plain; charset=utf-8")
	ctx.SetStatusCode(status)
	ctx.SetBodyString(msg)
}

func (h baseHandler) respondNoContent(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(http.StatusNoContent)
	ctx.ResetBody()
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, stdCtx context.Context, err error) {
	status, msg := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.WithRequestID(stdCtx, h.logger).Warn("request failed",
			zap.ByteString("path", ctx.Path()),
			zap.Int("status", status),
			zap.Error(err))
	}
	h.respondText(ctx, status, msg)
}

// mapError is the single translation point from the error taxonomy to HTTP.
func mapError(err error) (int, string) {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound, notFoundBody
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest, err.Error()
	case domain.IsDomainError(err, domain.ErrCodeStore):
		return http.StatusInternalServerError, "store error: " + err.Error()
	default:
		return http.StatusInternalServerError, "internal error: " + err.Error()
	}
}

// parseID reads the {id} path segment. Only the canonical decimal form of a
// positive integer is accepted, so "+1" and "01" never alias record 1.
func parseID(ctx *fasthttp.RequestCtx) (int64, error) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 || strconv.FormatInt(id, 10) != raw {
		return 0, domain.Invalid("invalid id")
	}
	return id, nil
}
