package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"freight/internal/generated/servers"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "internal error"

// StatusOf maps an error kind to its HTTP status.
func StatusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindInvalidInput:
		return http.StatusBadRequest
	case errs.KindUnauthorized:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindInvalidTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func codeOfStatus(status int) servers.ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return servers.ErrorCodeUnauthorized
	case http.StatusForbidden:
		return servers.ErrorCodeForbidden
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return servers.ErrorCodeNotFound
	case http.StatusConflict:
		return servers.ErrorCodeConflict
	case http.StatusUnprocessableEntity:
		return servers.ErrorCodeInvalidTransition
	case http.StatusTooManyRequests:
		return servers.ErrorCodeRateLimited
	}
	if status >= http.StatusInternalServerError {
		return servers.ErrorCodeInternal
	}
	return servers.ErrorCodeInvalidInput
}

// NewHTTPErrorHandler renders every error as the {code, message} envelope.
// Domain errors are classified by kind; internal errors are logged and their
// detail is withheld from the caller.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "Failed to write error response", "error", writeErr)
		}
	}
}

func render(err error) (int, servers.Error) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status := he.Code
		msg := http.StatusText(status)
		if status < http.StatusInternalServerError && he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		if status >= http.StatusInternalServerError {
			msg = internalErrorMessage
		}
		return status, servers.Error{Code: codeOfStatus(status), Message: msg}
	}

	kind := errs.KindOf(err)
	status := StatusOf(kind)
	switch kind {
	case errs.KindInternal:
		return status, servers.Error{Code: servers.ErrorCodeInternal, Message: internalErrorMessage}
	case errs.KindConflict:
		return status, servers.Error{
			Code:    servers.ErrorCodeConflict,
			Message: err.Error() + "; re-read the amendment and retry",
		}
	default:
		return status, servers.Error{Code: servers.ErrorCode(kind), Message: err.Error()}
	}
}
