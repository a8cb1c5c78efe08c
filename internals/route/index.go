// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "karateku_backend/internals/route/details"

	"karateku_backend/internals/notifier"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, mailer notifier.Mailer) {
	startTime = time.Now()

	// ===================== BASE =====================
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})

	// 📁 Static file untuk foto profil
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	app.Static("/uploads", uploadDir)

	// ===================== FEATURES =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, mailer)

	log.Println("[INFO] Setting up UserRoutes...")
	routeDetails.UserRoutes(app, db, mailer)

	log.Println("[INFO] Setting up PaymentRoutes...")
	routeDetails.PaymentRoutes(app, db, mailer)

	log.Println("[INFO] Setting up ExamRoutes...")
	routeDetails.ExamRoutes(app, db, mailer)
}
