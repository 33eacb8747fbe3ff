package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "activity-tracker.com/activity-tracker/internal/data_models"
	apperrors "activity-tracker.com/activity-tracker/internal/errors"
	"activity-tracker.com/activity-tracker/internal/services"
)

func render(c echo.Context, status int, view services.View, props map[string]any) error {
	if props == nil {
		props = map[string]any{}
	}
	return c.JSON(status, dto.Page{
		Component: string(view),
		Props:     props,
		URL:       c.Request().URL.RequestURI(),
	})
}

// renderMissing shows the Error page for an unknown activity and passes any
// other error on to the error handler.
func renderMissing(c echo.Context, err error) error {
	if errors.Is(err, apperrors.ErrActivityNotFound) {
		return render(c, http.StatusNotFound, services.ViewError, map[string]any{
			"message": apperrors.Message(err),
		})
	}
	return err
}
