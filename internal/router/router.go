package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	apiHandler "github.com/fastygo/taskapi/api/handler"
	"github.com/fastygo/taskapi/pkg/metrics"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	User   *apiHandler.UserHandler
	Health *apiHandler.HealthHandler
}

// New builds the route table. A nil metrics disables /metrics.
func New(handlers Handlers, m *metrics.Metrics) *router.Router {
	r := router.New()
	r.SaveMatchedRoutePath = true

	if handlers.Health != nil {
		r.GET("/health", handlers.Health.Check)
	}
	if m != nil {
		r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(m.Handler()))
	}

	r.GET("/tasks", handlers.Task.ListTasks)
	r.POST("/tasks", handlers.Task.CreateTask)
	r.GET("/tasks/{id}", handlers.Task.GetTask)
	r.PUT("/tasks/{id}", handlers.Task.ReplaceTask)
	r.DELETE("/tasks/{id}", handlers.Task.DeleteTask)

	r.GET("/users", handlers.User.ListUsers)
	r.POST("/users", handlers.User.CreateUser)
	r.GET("/users/{id}", handlers.User.GetUser)
	r.PUT("/users/{id}", handlers.User.ReplaceUser)
	r.DELETE("/users/{id}", handlers.User.DeleteUser)

	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		ctx.Response.Header.SetContentType("text/plain; charset=utf-8")
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetBodyString("not found")
	}

	return r
}
