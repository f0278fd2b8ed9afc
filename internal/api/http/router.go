package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/http/handlers"
	"github.com/spec-kit/hr-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Accounts       *handlers.AccountsHandler
	Attendance     *handlers.AttendanceHandler
	Leave          *handlers.LeaveHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. /api/admin/login stays public, so
// the admin-only routes carry their middleware chain per route instead
// of through a group on the /admin prefix.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/login", cfg.Auth.Login)
	api.Post("/admin/login", cfg.Auth.AdminLogin)
	api.Post("/refresh", cfg.Auth.Refresh)
	api.Post("/logout", cfg.Auth.Logout)

	authed := cfg.AuthMiddleware.Handle
	api.Get("/profile", authed, cfg.Accounts.Profile)

	attendance := api.Group("/attendance", authed)
	attendance.Post("/clock-in", cfg.Attendance.ClockIn)
	attendance.Post("/clock-out", cfg.Attendance.ClockOut)
	attendance.Get("/today", cfg.Attendance.Today)
	attendance.Get("/weekly", cfg.Attendance.Weekly)
	attendance.Get("/monthly", cfg.Attendance.Monthly)

	leave := api.Group("/leave", authed)
	leave.Post("/", cfg.Leave.Create)
	leave.Get("/history", cfg.Leave.History)

	api.Get("/reports/monthly", authed, cfg.Reports.Monthly)

	adminOnly := cfg.AuthMiddleware.RequireAdmin
	api.Post("/admin/register", authed, adminOnly, cfg.Accounts.Register)
	api.Post("/admin/grant", authed, adminOnly, cfg.Accounts.GrantAdmin)
	api.Get("/admin/leave", authed, adminOnly, cfg.Leave.AdminList)
	api.Patch("/admin/leave/:id", authed, adminOnly, cfg.Leave.Decide)
}
