package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/clean-auth/internal/controller"
	"github.com/ErlanBelekov/clean-auth/internal/messages"
)

type createRoleController interface {
	Handle(ctx context.Context, req controller.CreateRoleRequest) controller.Response
}

type RoleHandler struct {
	create  createRoleController
	catalog *messages.Catalog
}

func NewRoleHandler(create createRoleController, catalog *messages.Catalog) *RoleHandler {
	return &RoleHandler{create: create, catalog: catalog}
}

// POST /api/roles
func (h *RoleHandler) Create(c *gin.Context) {
	var req controller.CreateRoleRequest
	if !bindJSON(c, h.catalog, &req) {
		return
	}
	render(c, h.catalog, h.create.Handle(c.Request.Context(), req))
}
