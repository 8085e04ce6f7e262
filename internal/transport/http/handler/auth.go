package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ErlanBelekov/clean-auth/internal/controller"
	"github.com/ErlanBelekov/clean-auth/internal/messages"
)

// Defined here (point of use) so tests can inject fakes.
type signUpController interface {
	Handle(ctx context.Context, req controller.SignUpRequest) controller.Response
}

type loginController interface {
	Handle(ctx context.Context, req controller.LoginRequest) controller.Response
}

type AuthHandler struct {
	signUp  signUpController
	login   loginController
	catalog *messages.Catalog
}

func NewAuthHandler(signUp signUpController, login loginController, catalog *messages.Catalog) *AuthHandler {
	return &AuthHandler{signUp: signUp, login: login, catalog: catalog}
}

// POST /api/sign-up
// 201 with no body on success.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req controller.SignUpRequest
	if !bindJSON(c, h.catalog, &req) {
		return
	}
	render(c, h.catalog, h.signUp.Handle(c.Request.Context(), req))
}

// POST /api/login
// Returns {"accessToken": "<jwt>"}.
func (h *AuthHandler) Login(c *gin.Context) {
	var req controller.LoginRequest
	if !bindJSON(c, h.catalog, &req) {
		return
	}
	render(c, h.catalog, h.login.Handle(c.Request.Context(), req))
}
