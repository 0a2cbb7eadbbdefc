package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"remindmail/internal/interfaces/api/handler"
	apimiddleware "remindmail/internal/interfaces/api/middleware"
	"remindmail/internal/pkg/logger"
	"remindmail/internal/pkg/validation"
)

// Config holds the dependencies for the router.
type Config struct {
	ReminderHandler *handler.ReminderHandler
	Logger          logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			apimiddleware.HeaderProvider, apimiddleware.HeaderSubject, apimiddleware.HeaderEmail,
		},
		MaxAge: 300,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api/v1/reminder", apimiddleware.RequireIdentity(cfg.Logger))
	api.POST("", cfg.ReminderHandler.Create)
	api.GET("", cfg.ReminderHandler.FindByTitle)
	api.GET("/:id", cfg.ReminderHandler.GetByID)
	api.PATCH("/:id", cfg.ReminderHandler.Update)
	api.DELETE("/:id", cfg.ReminderHandler.Delete)
	api.GET("/sort/title", cfg.ReminderHandler.FindAllSortedByTitle)
	api.GET("/sort/date", cfg.ReminderHandler.FindAllSortedByDate)
	api.GET("/search-by-date", cfg.ReminderHandler.FindByDate)
	api.GET("/filter/date", cfg.ReminderHandler.FindByDateRange)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
