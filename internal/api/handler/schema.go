package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// errorResponse is the failure envelope shared by every business route.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// fail writes errorResponse. Server-side failures are logged with their cause.
func fail(c echo.Context, log zerolog.Logger, code int, message string, err error) error {
	resp := errorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
		if code >= 500 {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg(message)
		}
	}
	return c.JSON(code, resp)
}
