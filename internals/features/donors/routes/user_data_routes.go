package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sevasangh_backend/internals/constants"
	donorController "sevasangh_backend/internals/features/donors/controller"
	authMw "sevasangh_backend/internals/middlewares/auth"
)

// UserDataRoutes mounts donor-record CRUD, exports and stats (admin only).
func UserDataRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := donorController.New(db, v)

	donors := api.Group("/user-data",
		authMw.OnlyRoles(constants.RoleErrorAdmin("donor records"), constants.AdminOnly...),
	)
	donors.Post("/", ctl.Create)
	donors.Get("/", ctl.List)
	donors.Get("/stats", ctl.Stats)
	donors.Put("/:id", ctl.Update)
	donors.Delete("/:id", ctl.Delete)
}
