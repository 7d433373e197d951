package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/barberflow/barberflow/controllers"
	"github.com/barberflow/barberflow/middleware"
	"github.com/barberflow/barberflow/models"
)

// SetupRBACRoutes configures all RBAC related routes
func SetupRBACRoutes(app *fiber.App) {
	rbac := app.Group("/rbac", middleware.Protected())

	// Roles
	rbac.Post("/roles", middleware.RequireRole(models.RoleAdmin), controllers.CreateRole)
	rbac.Get("/roles", middleware.RequireRole(models.RoleAdmin), controllers.GetRoles)

	// Permissions
	rbac.Post("/permissions", middleware.RequireRole(models.RoleAdmin), controllers.CreatePermission)
	rbac.Get("/permissions", middleware.RequireRole(models.RoleAdmin), controllers.GetPermissions)

	// Assign role to user
	rbac.Post("/users/role", middleware.RequireRole(models.RoleAdmin), controllers.AssignRoleToUser)

	// Assign permission to role
	rbac.Post("/roles/permission", middleware.RequireRole(models.RoleAdmin), controllers.AssignPermissionToRole)
}
