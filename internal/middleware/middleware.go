package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskapi/pkg/httpcontext"
	"github.com/fastygo/taskapi/pkg/metrics"
)

// Middleware decorates a fasthttp handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Chain applies mws so that the first one is the outermost. Recover belongs
// last so the outer layers observe the 500 it writes.
func Chain(h fasthttp.RequestHandler, mws ...Middleware) fasthttp.RequestHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// RequestID guarantees every request carries an X-Request-ID before any
// handler or log line sees it.
func RequestID() Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			httpcontext.EnsureRequestID(ctx)
			next(ctx)
		}
	}
}

// AccessLog writes one line per request.
func AccessLog(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			defer func() {
				logger.Info("request",
					zap.ByteString("method", ctx.Method()),
					zap.ByteString("path", ctx.Path()),
					zap.Int("status", ctx.Response.StatusCode()),
					zap.Duration("duration", time.Since(start)),
					zap.ByteString("request_id", ctx.Request.Header.Peek(httpcontext.HeaderRequestID)))
			}()
			next(ctx)
		}
	}
}

// Recover turns a handler panic into a 500 instead of dropping the connection.
func Recover(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panic",
						zap.ByteString("path", ctx.Path()),
						zap.Any("panic", rec),
						zap.Stack("stack"))
					ctx.ResetBody()
					ctx.Response.Header.SetContentType("text/plain; charset=utf-8")
					ctx.SetStatusCode(http.StatusInternalServerError)
					ctx.SetBodyString(fmt.Sprintf("internal error: %v", rec))
				}
			}()
			next(ctx)
		}
	}
}

// Instrument records request count and latency labelled by the matched
// route pattern, so /tasks/1 and /tasks/2 share a series.
func Instrument(m *metrics.Metrics) Middleware {
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		if m == nil {
			return next
		}
		return func(ctx *fasthttp.RequestCtx) {
			done := m.Begin()
			defer func() {
				route, _ := ctx.UserValue(router.MatchedRoutePathParam).(string)
				if route == "" {
					route = "unmatched"
				}
				done(string(ctx.Method()), route, ctx.Response.StatusCode())
			}()
			next(ctx)
		}
	}
}
