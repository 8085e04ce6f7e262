package controller

import (
	"context"
	"log/slog"

	"github.com/ErlanBelekov/clean-auth/internal/messages"
	"github.com/ErlanBelekov/clean-auth/internal/usecase"
	"github.com/ErlanBelekov/clean-auth/internal/validation"
)

type roleCreator interface {
	CreateRole(ctx context.Context, input usecase.CreateRoleInput) error
}

type CreateRoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type CreateRoleController struct {
	roles   roleCreator
	catalog *messages.Catalog
	logger  *slog.Logger
}

func NewCreateRoleController(roles roleCreator, catalog *messages.Catalog, logger *slog.Logger) *CreateRoleController {
	return &CreateRoleController{
		roles:   roles,
		catalog: catalog,
		logger:  logger.With("component", "create_role_controller"),
	}
}

func (c *CreateRoleController) Handle(ctx context.Context, req CreateRoleRequest) Response {
	var vs []validation.Validator
	vs = append(vs, validation.Of(req.Name, c.catalog.Field(messages.FieldName)).Required().MinLength(3).Build()...)
	vs = append(vs, validation.Of(req.Permissions, c.catalog.Field(messages.FieldPermissions)).Required().Build()...)
	if err := validation.First(ctx, vs...); err != nil {
		return classify(err, c.logger, "validate create role")
	}

	if err := c.roles.CreateRole(ctx, usecase.CreateRoleInput{Name: req.Name, Permissions: req.Permissions}); err != nil {
		return classify(err, c.logger, "create role")
	}
	return Created()
}
