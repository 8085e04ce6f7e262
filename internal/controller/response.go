// Package controller turns validated requests into use case calls and
// classifies the outcome as a status code plus either a payload or an error.
// It knows nothing about the wire; internal/transport/http renders the
// Response.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/clean-auth/internal/domain"
)

// Response carries Data on success and Err on failure, never both.
type Response struct {
	StatusCode int
	Data       any
	Err        error
}

func OK(data any) Response { return Response{StatusCode: http.StatusOK, Data: data} }
func Created() Response { return Response{StatusCode: http.StatusCreated} }
func BadRequest(err error) Response { return Response{StatusCode: http.StatusBadRequest, Err: err} }
func Unauthorized(err error) Response { return Response{StatusCode: http.StatusUnauthorized, Err: err} }
func Forbidden(err error) Response { return Response{StatusCode: http.StatusForbidden, Err: err} }
func ServerError(err error) Response { return Response{StatusCode: http.StatusInternalServerError, Err: err} }

// Failed reports whether the response is an error response.
func (r Response) Failed() bool { return r.Err != nil }

// classify maps an error onto the taxonomy: expected validation and
// business-rule failures are client errors, anything else is a 500.
func classify(err error, logger *slog.Logger, msg string) Response {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		switch ve.Kind {
		case domain.KindUnauthorized:
			return Unauthorized(err)
		case domain.KindAccessDenied:
			return Forbidden(err)
		default:
			return BadRequest(err)
		}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrRoleNotFound),
		errors.Is(err, domain.ErrRoleExists),
		errors.Is(err, domain.ErrUnknownPermission):
		return BadRequest(err)
	}

	logger.Error(msg, "error", err)
	return ServerError(err)
}
