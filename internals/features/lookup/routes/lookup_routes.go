package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sevasangh_backend/internals/constants"
	areaController "sevasangh_backend/internals/features/lookup/areas/controller"
	villageController "sevasangh_backend/internals/features/lookup/villages/controller"
	authMw "sevasangh_backend/internals/middlewares/auth"
)

// LookupRoutes mounts village/area endpoints. Any authenticated operator
// may read the lists (needed for dropdowns); mutations are admin only.
func LookupRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	villageCtl := villageController.New(db, v)
	areaCtl := areaController.New(db, v)

	adminGuard := authMw.OnlyRoles(constants.RoleErrorAdmin("lookup management"), constants.AdminOnly...)

	villages := api.Group("/villages")
	villages.Get("/", villageCtl.List)
	villages.Post("/", adminGuard, villageCtl.Create)
	villages.Delete("/:id", adminGuard, villageCtl.Delete)

	areas := api.Group("/areas")
	areas.Get("/", areaCtl.List)
	areas.Post("/", adminGuard, areaCtl.Create)
	areas.Delete("/:id", adminGuard, areaCtl.Delete)
}
