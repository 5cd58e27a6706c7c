package adminRoutes

import (
	controllers "academy/controllers/admin"
	"academy/middleware"
	"academy/models"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up platform-wide dashboard routes
func SetupAdminRoutes(app *fiber.App) {
	dashGroup := app.Group("/admin/dashboard",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin),
	)

	dashGroup.Get("/stats", controllers.DashboardStats)
	dashGroup.Get("/analytics", controllers.GetPlatformAnalytics)
}
