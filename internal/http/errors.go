package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	dto "activity-tracker.com/activity-tracker/internal/data_models"
	apperrors "activity-tracker.com/activity-tracker/internal/errors"
)

// ErrorHandler renders every error returned by a handler or middleware as a
// {message} document. Errors the application does not know about are logged
// and reported without detail.
func ErrorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := apperrors.StatusCode(err)
		message := apperrors.Message(err)

		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
			status = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		case !apperrors.IsExpected(err):
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"err", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, dto.Response{Message: message})
		}
		if err != nil {
			logger.Warn("write error response", "err", err)
		}
	}
}
