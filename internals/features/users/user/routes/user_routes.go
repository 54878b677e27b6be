package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sevasangh_backend/internals/constants"
	userController "sevasangh_backend/internals/features/users/user/controller"
	authMw "sevasangh_backend/internals/middlewares/auth"
)

// UserRoutes mounts back-office account management (admin only).
func UserRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := userController.New(db, v)

	users := api.Group("/users",
		authMw.OnlyRoles(constants.RoleErrorAdmin("account management"), constants.AdminOnly...),
	)
	users.Get("/", ctl.List)
	users.Patch("/:id/active", ctl.SetActive)
}
