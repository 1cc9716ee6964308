// file: internals/route/index.go
package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	routeDetails "sekolahku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	secret := os.Getenv("JWT_SECRET")

	// ===================== STAFF =====================
	log.Println("[INFO] Setting up STAFF group (Auth + RoleCheck)...")
	staff := app.Group("/staff",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              secret,
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyRoles("Hanya staff yang boleh mengakses", "staff", "admin"),
	)

	// ===================== PARENT =====================
	log.Println("[INFO] Setting up PARENT group (Auth + RoleCheck)...")
	parent := app.Group("/parent",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              secret,
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyRoles("Hanya orang tua/wali yang boleh mengakses", "parent"),
	)

	log.Println("[INFO] Setting up FinanceRoutes...")
	routeDetails.FinanceRoutes(staff, parent, db)
}
