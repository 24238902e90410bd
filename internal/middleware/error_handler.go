package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopmate/pkg/logger"
	"shopmate/pkg/response"
)

// ErrorHandler converts uncaught handler errors into the response envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code == http.StatusInternalServerError {
		logger.Error("Unhandled error", err)
	}

	_ = c.JSON(code, response.Error("INTERNAL_ERROR", message, nil))
}
