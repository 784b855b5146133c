package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/offloadr/connect-api/internal/api/http/handlers"
	"github.com/offloadr/connect-api/internal/auth"
	"github.com/offloadr/connect-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Workspaces     *handlers.WorkspacesHandler
	Tasks          *handlers.TasksHandler
	Messages       *handlers.MessagesHandler
	Notifications  *handlers.NotificationsHandler
	Stream         *handlers.StreamHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	api.Get("/profile", cfg.Users.Me)
	api.Patch("/profile", cfg.Users.UpdateProfile)

	admin := auth.RequireRole(domain.RoleAdmin)
	api.Get("/users", admin, cfg.Users.List)
	api.Put("/users/:id/role", admin, cfg.Users.ChangeRole)
	api.Delete("/users/:id", admin, cfg.Users.Delete)

	team := auth.RequireTeamMember()
	api.Get("/staff", team, cfg.Users.ListStaff)
	api.Get("/staff/roles", cfg.Users.StaffRoles)

	api.Get("/workspaces", cfg.Workspaces.List)
	api.Post("/workspaces", admin, cfg.Workspaces.Create)
	api.Get("/workspaces/:id", cfg.Workspaces.Get)
	api.Put("/workspaces/:id/progress", team, cfg.Workspaces.SetProgress)
	api.Delete("/workspaces/:id", admin, cfg.Workspaces.Delete)

	api.Get("/workspaces/:id/tasks", cfg.Tasks.List)
	api.Post("/workspaces/:id/tasks", team, cfg.Tasks.Create)
	api.Put("/workspaces/:id/tasks/:taskId/toggle", team, cfg.Tasks.Toggle)

	api.Get("/workspaces/:id/messages", cfg.Messages.ListWorkspace)
	api.Post("/workspaces/:id/messages", cfg.Messages.SendWorkspace)
	api.Get("/staff-chat", team, cfg.Messages.ListGlobal)
	api.Post("/staff-chat", team, cfg.Messages.SendGlobal)

	api.Get("/notifications", cfg.Notifications.List)
	api.Put("/notifications/read-all", cfg.Notifications.MarkAllRead)
	api.Put("/notifications/:id/read", cfg.Notifications.MarkRead)
	api.Post("/notifications", admin, cfg.Notifications.Send)

	api.Get("/stream", cfg.Stream.Stream)
}
