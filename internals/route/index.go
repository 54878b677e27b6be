package routes

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	donorRoutes "sevasangh_backend/internals/features/donors/routes"
	lookupRoutes "sevasangh_backend/internals/features/lookup/routes"
	receiptRoutes "sevasangh_backend/internals/features/receipts/routes"
	authRoutes "sevasangh_backend/internals/features/users/auth/routes"
	userRoutes "sevasangh_backend/internals/features/users/user/routes"
	authMw "sevasangh_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v := validator.New()

	// ===================== AUTH (public login) =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoutes.AuthRoutes(app, db, v)

	// ===================== PROTECTED API =====================
	log.Println("[INFO] Setting up protected API group...")
	api := app.Group("/api", authMw.AuthMiddleware(db))

	userRoutes.UserRoutes(api, db, v)
	lookupRoutes.LookupRoutes(api, db, v)
	donorRoutes.UserDataRoutes(api, db, v)
	receiptRoutes.ReceiptRoutes(api, db, v)
}
