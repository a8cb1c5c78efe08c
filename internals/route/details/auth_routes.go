// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "karateku_backend/internals/features/users/auth/controller"
	authMw "karateku_backend/internals/middlewares/auth"
	"karateku_backend/internals/notifier"
)

func AuthRoutes(app *fiber.App, db *gorm.DB, mailer notifier.Mailer) {
	ctrl := authController.NewAuthController(db, mailer)

	api := app.Group("/api/auth")

	// 🌐 Public
	api.Post("/register", ctrl.Register)
	api.Post("/login", ctrl.Login)
	api.Get("/instructors", ctrl.Instructors)
	api.Post("/qr-generate", ctrl.QRGenerate)

	// 🔒 Butuh JWT
	protected := api.Group("/", authMw.AuthMiddleware(db))
	protected.Get("/me", ctrl.Me)
	protected.Post("/qr-verify", ctrl.QRVerify)
	protected.Patch("/change-password", ctrl.ChangePassword)
}
