package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sevasangh_backend/internals/constants"
	authController "sevasangh_backend/internals/features/users/auth/controller"
	"sevasangh_backend/internals/middlewares"
	authMw "sevasangh_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the public login and the protected logout/register.
func AuthRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	ctl := authController.New(db, v)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)

	auth.Post("/logout", authMw.AuthMiddleware(db), ctl.Logout)
	auth.Post("/register",
		middlewares.RegisterRateLimiter(),
		authMw.AuthMiddleware(db),
		authMw.OnlyRoles(constants.RoleErrorAdmin("account registration"), constants.AdminOnly...),
		ctl.Register,
	)
}
