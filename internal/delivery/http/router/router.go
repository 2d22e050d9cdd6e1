// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"booking/config"
	"booking/internal/delivery/http/middleware"
	"booking/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config          *config.Config
	BookingHandler  *handler.BookingHandler
	CalendarHandler *handler.CalendarHandler
	AdminMiddleware *middleware.AdminMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg             *config.Config
	bookingHandler  *handler.BookingHandler
	calendarHandler *handler.CalendarHandler
	adminMiddleware *middleware.AdminMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:             params.Config,
		bookingHandler:  params.BookingHandler,
		calendarHandler: params.CalendarHandler,
		adminMiddleware: params.AdminMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Customer-facing booking routes, no authentication
	bookingGroup := api.Group("/booking")
	{
		bookingGroup.GET("/availability", r.bookingHandler.GetAvailability)
		bookingGroup.POST("/book", r.bookingHandler.Book)
	}

	// Calendar management routes require admin credentials
	googleGroup := api.Group("/google")
	googleGroup.Use(r.adminMiddleware.RequireAdmin)
	{
		googleGroup.GET("/status", r.calendarHandler.GetStatus)
		googleGroup.GET("/connect", r.calendarHandler.Connect)
		googleGroup.POST("/disconnect", r.calendarHandler.Disconnect)
	}

	// Google redirects the admin's browser here; no admin guard.
	api.GET("/google/oauth/callback", r.calendarHandler.OAuthCallback)

	// Admin booking views
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.adminMiddleware.RequireAdmin)
	{
		adminGroup.GET("/bookings", r.bookingHandler.ListBookings)
		adminGroup.GET("/bookings/:id", r.bookingHandler.GetBooking)
	}

	// Break-glass re-authorization entry point. Not registered at all unless
	// explicitly enabled, so in normal operation the route does not exist.
	if r.cfg.Reauth != nil && r.cfg.Reauth.Enabled {
		api.GET("/google/oauth/temp-connect/:token", r.calendarHandler.TempConnect)
	}
}
