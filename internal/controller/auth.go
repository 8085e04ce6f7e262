package controller

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
	"github.com/ErlanBelekov/clean-auth/internal/messages"
	"github.com/ErlanBelekov/clean-auth/internal/metrics"
	"github.com/ErlanBelekov/clean-auth/internal/usecase"
	"github.com/ErlanBelekov/clean-auth/internal/validation"
)

type signUpper interface {
	SignUp(ctx context.Context, input usecase.SignUpInput) error
}

type loginer interface {
	Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error)
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// normalized strips surrounding whitespace so validation sees the values
// that are stored.
func (r SignUpRequest) normalized() SignUpRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Role = strings.TrimSpace(r.Role)
	return r
}

func signUpValidators(catalog *messages.Catalog, req SignUpRequest) []validation.Validator {
	var vs []validation.Validator
	vs = append(vs, validation.Of(req.Name, catalog.Field(messages.FieldName)).Required().MinLength(3).Build()...)
	vs = append(vs, validation.Of(req.Email, catalog.Field(messages.FieldEmail)).Required().Email().Build()...)
	vs = append(vs, validation.Of(req.Password, catalog.Field(messages.FieldPassword)).Required().MinLength(8).Build()...)
	return vs
}

// SignUpController serves public self-registration. The requested role is
// ignored; new accounts always get the default role.
type SignUpController struct {
	signUp  signUpper
	catalog *messages.Catalog
	logger  *slog.Logger
}

func NewSignUpController(signUp signUpper, catalog *messages.Catalog, logger *slog.Logger) *SignUpController {
	return &SignUpController{
		signUp:  signUp,
		catalog: catalog,
		logger:  logger.With("component", "signup_controller"),
	}
}

func (c *SignUpController) Handle(ctx context.Context, req SignUpRequest) Response {
	req = req.normalized()
	if err := validation.First(ctx, signUpValidators(c.catalog, req)...); err != nil {
		metrics.SignUpsTotal.WithLabelValues("invalid").Inc()
		return classify(err, c.logger, "validate signup")
	}

	err := c.signUp.SignUp(ctx, usecase.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		resp := classify(err, c.logger, "sign up")
		metrics.SignUpsTotal.WithLabelValues(outcome(resp)).Inc()
		return resp
	}

	metrics.SignUpsTotal.WithLabelValues("created").Inc()
	return Created()
}

type LoginController struct {
	login   loginer
	catalog *messages.Catalog
	logger  *slog.Logger
}

func NewLoginController(login loginer, catalog *messages.Catalog, logger *slog.Logger) *LoginController {
	return &LoginController{
		login:   login,
		catalog: catalog,
		logger:  logger.With("component", "login_controller"),
	}
}

// Handle answers 400 InvalidCredentials for both an unknown email and a wrong
// password.
func (c *LoginController) Handle(ctx context.Context, req LoginRequest) Response {
	var vs []validation.Validator
	vs = append(vs, validation.Of(req.Email, c.catalog.Field(messages.FieldEmail)).Required().Build()...)
	vs = append(vs, validation.Of(req.Password, c.catalog.Field(messages.FieldPassword)).Required().Build()...)
	if err := validation.First(ctx, vs...); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
		return classify(err, c.logger, "validate login")
	}

	out, err := c.login.Login(ctx, usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return classify(err, c.logger, "login")
	}
	if out == nil || out.AccessToken == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return BadRequest(domain.ErrInvalidCredentials)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return OK(out)
}

func outcome(r Response) string {
	if r.StatusCode >= 500 {
		return "error"
	}
	return "rejected"
}
