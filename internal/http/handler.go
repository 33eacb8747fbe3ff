package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	dto "activity-tracker.com/activity-tracker/internal/data_models"
	apperrors "activity-tracker.com/activity-tracker/internal/errors"
	"activity-tracker.com/activity-tracker/internal/http/validators"
	model "activity-tracker.com/activity-tracker/internal/models"
	"activity-tracker.com/activity-tracker/internal/services"
)

type Handler struct {
	activityService *services.ActivityService
	db              *gorm.DB
}

func NewHandler(activityService *services.ActivityService, db *gorm.DB) *Handler {
	return &Handler{
		activityService: activityService,
		db:              db,
	}
}

func (h *Handler) Index(c echo.Context) error {
	var q dto.ListQuery
	if err := c.Bind(&q); err != nil {
		return apperrors.ErrInvalidJSON.WithMessage("invalid query parameters")
	}

	page, err := h.activityService.Index(c.Request().Context(), services.ListOptions{
		Search:  q.Search,
		Page:    q.Page,
		PerPage: q.ItemsPerPage,
	})
	if err != nil {
		return err
	}

	return render(c, http.StatusOK, services.ViewIndex, map[string]any{
		"activities": page,
		"search":     q.Search,
	})
}

func (h *Handler) SearchAll(c echo.Context) error {
	var q dto.ListQuery
	if err := c.Bind(&q); err != nil {
		return apperrors.ErrInvalidJSON.WithMessage("invalid query parameters")
	}

	page, err := h.activityService.Search(c.Request().Context(), services.ListOptions{
		Search:  q.Search,
		Page:    q.Page,
		PerPage: q.ItemsPerPage,
	}, q.AllPages)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

func (h *Handler) Create(c echo.Context) error {
	statuses, err := h.activityService.Statuses(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, services.ViewHome, map[string]any{"statuses": statuses})
}

func (h *Handler) Store(c echo.Context) error {
	var req dto.StoreActivitiesRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateStoreActivitiesRequest(&req); err != nil {
		return err
	}

	created, err := h.activityService.CreateBatch(c.Request().Context(), req.Tasks, req.StatusIDs)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Response{
		Message:     "NEW ACTIVITY ADDED SUCCESSFULLY",
		Data:        created,
		RedirectURL: "/today",
	})
}

func (h *Handler) Today(c echo.Context) error {
	activities, err := h.activityService.Today(c.Request().Context())
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, services.ViewToday, map[string]any{"activities": activities})
}

// ChangeStatus serves both /todayupdate/:id and /editstatus/:id.
func (h *Handler) ChangeStatus(c echo.Context) error {
	var req dto.ChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateChangeStatusRequest(&req); err != nil {
		return err
	}

	activity, err := h.activityService.SetStatus(c.Request().Context(), c.Param("id"), *req.StatusID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Response{
		Message: "CHANGES HAVE BEEN SUBMITTED",
		Data:    activity,
	})
}

func (h *Handler) listing(view services.View) echo.HandlerFunc {
	return func(c echo.Context) error {
		search := c.QueryParam("search")
		activities, err := h.activityService.ListView(c.Request().Context(), view, search)
		if err != nil {
			return err
		}
		return render(c, http.StatusOK, view, map[string]any{
			"activities": activities,
			"search":     search,
		})
	}
}

func (h *Handler) Show(c echo.Context) error {
	activity, view, err := h.activityService.Show(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, view, map[string]any{"activity": activity})
}

// page renders a fixed view of one activity: Details, Edit or Status.
func (h *Handler) page(view services.View) echo.HandlerFunc {
	return func(c echo.Context) error {
		activity, err := h.activityService.Find(c.Request().Context(), c.Param("id"))
		if err != nil {
			return renderMissing(c, err)
		}
		return render(c, http.StatusOK, view, map[string]any{"activity": activity})
	}
}

func (h *Handler) present(p services.Presentation) echo.HandlerFunc {
	return func(c echo.Context) error {
		activity, view, err := h.activityService.Present(c.Request().Context(), c.Param("id"), p)
		if err != nil {
			return renderMissing(c, err)
		}
		return render(c, http.StatusOK, view, map[string]any{"activity": activity})
	}
}

func (h *Handler) Rename(c echo.Context) error {
	var req dto.RenameActivityRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateRenameActivityRequest(&req); err != nil {
		return err
	}

	activity, err := h.activityService.Rename(c.Request().Context(), c.Param("id"), req.Activity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Response{
		Message:     "ACTIVITY NAME UPDATED SUCCESSFULLY",
		Data:        activity,
		RedirectURL: "/show/" + activity.ID,
	})
}

type transition func(ctx context.Context, id string) (*model.Activity, error)

// action adapts a single-record transition to a JSON handler. redirect may
// be empty; "%s" in it is replaced by the activity id.
func action(op transition, message, redirect string) echo.HandlerFunc {
	return func(c echo.Context) error {
		activity, err := op(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		res := dto.Response{Message: message, Data: activity}
		if redirect != "" {
			res.RedirectURL = strings.ReplaceAll(redirect, "%s", activity.ID)
		}
		return c.JSON(http.StatusOK, res)
	}
}

func (h *Handler) Unarchive(c echo.Context) error {
	activity, view, err := h.activityService.Unarchive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return renderMissing(c, err)
	}
	return render(c, http.StatusOK, view, map[string]any{"activity": activity})
}

// Revive serves both /revive/:id and /restart/:id.
func (h *Handler) Revive(c echo.Context) error {
	var req dto.ReviveActivityRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateReviveActivityRequest(&req); err != nil {
		return err
	}

	activity, err := h.activityService.Revive(c.Request().Context(), c.Param("id"), *req.StatusID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Response{
		Message:     "ACTIVITY IS NO LONGER ARCHIEVED",
		Data:        activity,
		RedirectURL: "/show/" + activity.ID,
	})
}

func (h *Handler) Erase(c echo.Context) error {
	if err := h.activityService.Erase(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Response{Message: "ACTIVITY ERASED PERMANENTLY", RedirectURL: "/deleted"})
}

func (h *Handler) DeleteAll(c echo.Context) error {
	count, err := h.activityService.PurgeDeleted(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Response{
		Message: fmt.Sprintf("%d activities deleted successfully.", count),
		Data:    map[string]int64{"count": count},
	})
}

func (h *Handler) Healthz(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, dto.Response{Message: "database unavailable"})
	}
	return c.JSON(http.StatusOK, dto.Response{Message: "ok"})
}
