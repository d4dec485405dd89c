package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"campusdelivery/internal/core/application/usecases/commands"
	"campusdelivery/internal/core/domain/model/order"
	"campusdelivery/internal/core/domain/model/proof"
	"campusdelivery/internal/core/domain/model/robot"
	"campusdelivery/internal/core/domain/services"
	"campusdelivery/internal/core/ports"
	"campusdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// RetryAfterSeconds is sent with no_robot_available.
const RetryAfterSeconds = 30

// ErrUnauthenticated is returned by the auth middleware when X-User-ID is
// missing, malformed or unknown.
var ErrUnauthenticated = errors.New("unauthenticated")

type errorMapping struct {
	target error
	status int
	code   string
}

// Order matters: the first match wins, so specific sentinels come before the
// generic errs categories they may also wrap.
var errorMappings = []errorMapping{
	{ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
	{services.ErrForbidden, http.StatusForbidden, "forbidden"},
	{commands.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{commands.ErrStatusNotAllowed, http.StatusBadRequest, "status_not_allowed"},
	{order.ErrInvalidTransition, http.StatusBadRequest, "invalid_transition"},
	{order.ErrStaleState, http.StatusConflict, "stale_state"},
	{robot.ErrNoRobotAvailable, http.StatusBadRequest, "no_robot_available"},
	{robot.ErrRobotBusy, http.StatusConflict, "robot_busy"},
	{proof.ErrNoCodeFound, http.StatusBadRequest, "no_code_found"},
	{proof.ErrMalformedProof, http.StatusBadRequest, "malformed_proof"},
	{proof.ErrInvalidSignature, http.StatusBadRequest, "invalid_signature"},
	{ports.ErrUsernameTaken, http.StatusConflict, "username_taken"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "invalid_request"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "invalid_request"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "invalid_request"},
}

// classify returns the HTTP status and stable code for err. ok is false for
// errors that are not part of the API contract.
func classify(err error) (status int, code string, ok bool) {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) && !errors.Is(err, commands.ErrOrderNotFound) {
		return http.StatusNotFound, "unknown_" + notFound.ParamName, true
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code, true
		}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, echoCode(he.Code), true
	}

	return http.StatusInternalServerError, "internal_error", false
}

func echoCode(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusRequestEntityTooLarge:
		return "invalid_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusUnauthorized:
		return "unauthenticated"
	default:
		return "internal_error"
	}
}

// NewErrorHandler renders errors returned by handlers and middleware as the
// {code, detail} document. Unexpected errors are logged and their text is
// never sent to the client.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, ok := classify(err)
		detail := err.Error()
		if !ok {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"error", err,
			)
			detail = http.StatusText(status)
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if msg, isString := he.Message.(string); isString {
				detail = msg
			}
		}

		if code == "no_robot_available" {
			c.Response().Header().Set("Retry-After", strconv.Itoa(RetryAfterSeconds))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, Error{Code: code, Detail: detail})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
