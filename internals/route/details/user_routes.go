// file: internals/route/details/user_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"karateku_backend/internals/constants"
	userController "karateku_backend/internals/features/users/user/controller"
	authMw "karateku_backend/internals/middlewares/auth"
	"karateku_backend/internals/notifier"
)

func UserRoutes(app *fiber.App, db *gorm.DB, mailer notifier.Mailer) {
	ctrl := userController.NewUserController(db, mailer)

	api := app.Group("/api/users", authMw.AuthMiddleware(db))

	// 🥋 Khusus instructor
	instructorOnly := authMw.OnlyRoles(
		constants.RoleErrorInstructor("mengelola student"),
		constants.InstructorOnly...,
	)
	api.Get("/instructor/:instructorId/students", instructorOnly, ctrl.ListStudents)
	api.Patch("/:studentId/block", instructorOnly, ctrl.ToggleBlock)
	api.Patch("/:studentId/belt", instructorOnly, ctrl.UpdateBelt)

	// 👤 Semua user login
	api.Patch("/profile", ctrl.UpdateProfile)
	api.Post("/profile-photo", ctrl.UploadProfilePhoto)
	api.Post("/send-email/:userId", ctrl.SendEmail)
}
