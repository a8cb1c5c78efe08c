// file: internals/route/details/exam_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"karateku_backend/internals/constants"
	examController "karateku_backend/internals/features/exams/controller"
	authMw "karateku_backend/internals/middlewares/auth"
	"karateku_backend/internals/notifier"
)

func ExamRoutes(app *fiber.App, db *gorm.DB, mailer notifier.Mailer) {
	ctrl := examController.NewExamController(db, mailer)

	api := app.Group("/api/exams", authMw.AuthMiddleware(db))

	instructorOnly := authMw.OnlyRoles(
		constants.RoleErrorInstructor("mengelola exam"),
		constants.InstructorOnly...,
	)
	studentOnly := authMw.OnlyRoles(
		constants.RoleErrorStudent("mendaftar exam"),
		constants.StudentOnly...,
	)

	api.Post("/", instructorOnly, ctrl.Create)
	api.Get("/", ctrl.List)
	api.Get("/registered/:studentId", ctrl.ListRegistered)
	api.Get("/student/:studentId/results", ctrl.ListStudentResults)
	api.Get("/:id", ctrl.GetByID)
	api.Post("/:id/register", studentOnly, ctrl.Register)
	api.Post("/:examId/results", instructorOnly, ctrl.Grade)
	api.Patch("/:examId/status", instructorOnly, ctrl.UpdateStatus)
	api.Delete("/:examId", instructorOnly, ctrl.Delete)
}
