package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/clean-auth/internal/controller"
	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/messages"
	"github.com/ErlanBelekov/clean-auth/internal/transport/http/middleware"
)

type listUsersController interface {
	Handle(ctx context.Context, req controller.ListUsersRequest) controller.Response
}

type createUserController interface {
	Handle(ctx context.Context, actor domain.Role, req controller.SignUpRequest) controller.Response
}

type UserHandler struct {
	list    listUsersController
	create  createUserController
	catalog *messages.Catalog
}

func NewUserHandler(list listUsersController, create createUserController, catalog *messages.Catalog) *UserHandler {
	return &UserHandler{list: list, create: create, catalog: catalog}
}

// GET /api/users?page=&limit=
func (h *UserHandler) List(c *gin.Context) {
	req := controller.ListUsersRequest{
		Page:  c.Query("page"),
		Limit: c.Query("limit"),
	}
	render(c, h.catalog, h.list.Handle(c.Request.Context(), req))
}

// POST /api/users
// Runs behind Authorize, which leaves the caller's role in the context.
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := middleware.RoleFrom(c)
	if !ok {
		render(c, h.catalog, controller.Forbidden(domain.ErrAccessDenied))
		return
	}

	var req controller.SignUpRequest
	if !bindJSON(c, h.catalog, &req) {
		return
	}
	render(c, h.catalog, h.create.Handle(c.Request.Context(), actor, req))
}
