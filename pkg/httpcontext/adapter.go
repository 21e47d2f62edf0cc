package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/taskapi/pkg/logger"
)

// HeaderRequestID carries the correlation id in both directions.
const HeaderRequestID = "X-Request-ID"

// Adapter converts fasthttp.RequestCtx into a stdlib context bounded by the
// request timeout and tagged with the request id.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach derives the context a handler passes down to the gateway.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := EnsureRequestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	return stdCtx, cancel
}

// EnsureRequestID reuses the inbound X-Request-ID or mints one, and echoes it
// on the response.
func EnsureRequestID(ctx *fasthttp.RequestCtx) string {
	if ctx == nil {
		return uuid.NewString()
	}
	reqID := strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderRequestID)))
	if reqID == "" {
		reqID = uuid.NewString()
		ctx.Request.Header.Set(HeaderRequestID, reqID)
	}
	ctx.Response.Header.Set(HeaderRequestID, reqID)
	return reqID
}
