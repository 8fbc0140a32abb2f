package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rentflow-backend/internal/domain/fault"
)

// statusFor maps the fault taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch fault.KindOf(err) {
	case fault.KindValidation:
		return http.StatusBadRequest
	case fault.KindNotFound:
		return http.StatusNotFound
	case fault.KindPrecondition:
		return http.StatusPreconditionFailed
	case fault.KindConflict:
		return http.StatusConflict
	case fault.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

// actorID pulls the authenticated caller id set by the edge proxy.
func actorID(c echo.Context) string {
	return c.Request().Header.Get("Ax-Actor-Id")
}
