// file: internals/route/details/payment_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"karateku_backend/internals/constants"
	paymentController "karateku_backend/internals/features/finance/payments/controller"
	authMw "karateku_backend/internals/middlewares/auth"
	"karateku_backend/internals/notifier"
)

func PaymentRoutes(app *fiber.App, db *gorm.DB, mailer notifier.Mailer) {
	ctrl := paymentController.NewPaymentController(db, mailer)

	api := app.Group("/api/payments", authMw.AuthMiddleware(db))

	instructorOnly := authMw.OnlyRoles(
		constants.RoleErrorInstructor("mengelola payment"),
		constants.InstructorOnly...,
	)
	studentOnly := authMw.OnlyRoles(
		constants.RoleErrorStudent("membayar tagihan"),
		constants.StudentOnly...,
	)

	api.Post("/", instructorOnly, ctrl.Create)
	api.Get("/student/:studentId", ctrl.ListByStudent)
	api.Get("/instructor/:instructorId", instructorOnly, ctrl.ListByInstructor)
	api.Patch("/:id/pay", studentOnly, ctrl.Pay)
	api.Post("/send-reminder/:studentId", instructorOnly, ctrl.SendReminder)
}
