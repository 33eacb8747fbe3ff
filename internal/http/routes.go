package http

import (
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "activity-tracker.com/activity-tracker/internal/http/middlewares"
	"activity-tracker.com/activity-tracker/internal/ratelimit"
	"activity-tracker.com/activity-tracker/internal/services"
)

// NewServer builds the echo instance with middleware, error handling and
// every route registered.
func NewServer(h *Handler, limiter ratelimit.Limiter, logger *log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))

	Register(e, h, limiter, logger)
	return e
}

func Register(e *echo.Echo, h *Handler, limiter ratelimit.Limiter, logger *log.Logger) {
	e.Use(middleware.RateLimiter(limiter, logger))

	s := h.activityService

	e.GET("/healthz", h.Healthz)

	e.GET("/", h.Index)
	e.GET("/searchall", h.SearchAll)
	e.GET("/create", h.Create)
	e.POST("/store", h.Store)
	e.GET("/today", h.Today)
	e.POST("/todayupdate/:id", h.ChangeStatus)

	e.GET("/completed", h.listing(services.ViewCompleted))
	e.GET("/pending", h.listing(services.ViewPending))
	e.GET("/paused", h.listing(services.ViewPaused))
	e.GET("/archieved", h.listing(services.ViewArchived))
	e.GET("/deleted", h.listing(services.ViewDeleted))

	e.GET("/show/:id", h.Show)
	e.GET("/detail/:id", h.page(services.ViewDetails))
	e.GET("/edit/:id", h.page(services.ViewEdit))
	e.GET("/updatestatus/:id", h.page(services.ViewStatus))
	e.GET("/view/:id", h.present(services.PresentView))
	e.GET("/review/:id", h.present(services.PresentReview))

	e.POST("/update/:id", h.Rename)
	e.POST("/editstatus/:id", h.ChangeStatus)
	e.GET("/pause/:id", action(s.Pause, "ACTIVITY PAUSED", ""))
	e.POST("/start/:id", action(s.Resume, "ACTIVITY IS NO LONGER PAUSED", "/show/%s"))
	e.GET("/archieve/:id", action(s.Archive, "ACTIVITY ARCHIEVED", ""))
	e.POST("/archivepaused/:id", action(s.ArchivePaused, "Activity archived successfully", "/archieved"))
	e.GET("/unarchieve/:id", h.Unarchive)
	e.POST("/revive/:id", h.Revive)
	e.POST("/restart/:id", h.Revive)

	e.POST("/delete/:id", action(s.SoftDelete, "ACTIVITY MOVED TO DELETED", "/"))
	e.POST("/recycle/:id", action(s.Restore, "ACTIVITY RECYCLED SUCCESSFULLY", "/show/%s"))
	e.POST("/erase/:id", h.Erase)
	e.POST("/deleteall", h.DeleteAll)
}
