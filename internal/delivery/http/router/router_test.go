package router

import (
	"io"
	"log/slog"
	"testing"

	"booking/config"
	"booking/internal/delivery/http/middleware"
	"booking/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func registeredPaths(e *echo.Echo) []string {
	routes := e.Routes()
	paths := make([]string, 0, len(routes))
	for _, route := range routes {
		paths = append(paths, route.Method+" "+route.Path)
	}

	return paths
}

func newRouterForTest(cfg *config.Config) *router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewRouter(RouterParams{
		Config:          cfg,
		BookingHandler:  handler.NewBookingHandler(nil, nil),
		CalendarHandler: handler.NewCalendarHandler(nil, nil, logger),
		AdminMiddleware: middleware.NewAdminMiddleware(nil, cfg),
	})
}

func TestRegisterRoutes_CoreRoutes(t *testing.T) {
	e := echo.New()
	newRouterForTest(&config.Config{}).RegisterRoutes(e)

	paths := registeredPaths(e)
	assert.Contains(t, paths, "GET /health")
	assert.Contains(t, paths, "GET /api/booking/availability")
	assert.Contains(t, paths, "POST /api/booking/book")
	assert.Contains(t, paths, "GET /api/google/status")
	assert.Contains(t, paths, "GET /api/google/oauth/callback")
	assert.Contains(t, paths, "GET /api/admin/bookings")
}

func TestRegisterRoutes_TempConnectAbsentByDefault(t *testing.T) {
	e := echo.New()
	newRouterForTest(&config.Config{}).RegisterRoutes(e)

	assert.NotContains(t, registeredPaths(e), "GET /api/google/oauth/temp-connect/:token")
}

func TestRegisterRoutes_TempConnectRequiresEnabledFlag(t *testing.T) {
	cfg := &config.Config{Reauth: &config.ReauthConfig{Enabled: false, Secret: "s"}}
	e := echo.New()
	newRouterForTest(cfg).RegisterRoutes(e)

	assert.NotContains(t, registeredPaths(e), "GET /api/google/oauth/temp-connect/:token")
}

func TestRegisterRoutes_TempConnectPresentWhenEnabled(t *testing.T) {
	cfg := &config.Config{Reauth: &config.ReauthConfig{Enabled: true, Secret: "s"}}
	e := echo.New()
	newRouterForTest(cfg).RegisterRoutes(e)

	assert.Contains(t, registeredPaths(e), "GET /api/google/oauth/temp-connect/:token")
}
