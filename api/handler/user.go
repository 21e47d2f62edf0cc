package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskapi/api/transport"
	"github.com/fastygo/taskapi/pkg/httpcontext"
	userUC "github.com/fastygo/taskapi/usecase/user"
)

type UserHandler struct {
	baseHandler
	uc *userUC.UseCase
}

func NewUserHandler(uc *userUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List users
// @Tags users
// @Router /users [get]
func (h *UserHandler) ListUsers(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	users, err := h.uc.ListUsers(stdCtx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewUserList(users))
}

// @Summary Get user
// @Tags users
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := parseID(ctx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}

	user, err := h.uc.GetUser(stdCtx, id)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewUserResponse(*user))
}

// @Summary Create user
// @Tags users
// @Router /users [post]
func (h *UserHandler) CreateUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	in, err := transport.DecodeUser(ctx.PostBody())
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}

	created, err := h.uc.CreateUser(stdCtx, in)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusCreated, transport.NewUserResponse(*created))
}

// @Summary Replace user
// @Tags users
// @Router /users/{id} [put]
func (h *UserHandler) ReplaceUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := parseID(ctx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	in, err := transport.DecodeUser(ctx.PostBody())
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}

	updated, err := h.uc.ReplaceUser(stdCtx, id, in)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewUserResponse(*updated))
}

// @Summary Delete user
// @Tags users
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	id, err := parseID(ctx)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}

	if err := h.uc.DeleteUser(stdCtx, id); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondNoContent(ctx)
}
