package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sevasangh_backend/internals/constants"
	receiptController "sevasangh_backend/internals/features/receipts/controller"
	receiptService "sevasangh_backend/internals/features/receipts/service"
	userService "sevasangh_backend/internals/features/users/user/service"
	authMw "sevasangh_backend/internals/middlewares/auth"
)

// ReceiptRoutes mounts the receipt ledger. All endpoints require a receipt
// staff role; finer rules (ownership, created_by filter) live in the
// ledger itself.
func ReceiptRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ledger := receiptService.NewLedger(db, userService.NewDirectory(db))
	ctl := receiptController.New(ledger, v)

	receipts := api.Group("/receipts",
		authMw.OnlyRoles(constants.RoleErrorReceiptStaff("receipts"), constants.ReceiptStaff...),
	)
	receipts.Post("/", ctl.Create)
	receipts.Get("/", ctl.List)
	receipts.Get("/export/csv", ctl.ExportCSV)
	receipts.Get("/stats", ctl.Stats)
	receipts.Get("/creators", ctl.Creators)
	receipts.Get("/:id", ctl.GetByID)
	receipts.Patch("/:id", ctl.Update)
	receipts.Delete("/:id", ctl.Cancel)
}
