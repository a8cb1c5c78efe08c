// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "karateku_backend/internals/features/users/auth/service"
	"karateku_backend/internals/notifier"
)

type AuthController struct {
	DB     *gorm.DB
	Mailer notifier.Mailer
}

func NewAuthController(db *gorm.DB, mailer notifier.Mailer) *AuthController {
	return &AuthController{DB: db, Mailer: mailer}
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	return authService.Register(ac.DB, ac.Mailer, c)
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	return authService.Login(ac.DB, c)
}

func (ac *AuthController) Me(c *fiber.Ctx) error {
	return authService.Me(ac.DB, c)
}

func (ac *AuthController) Instructors(c *fiber.Ctx) error {
	return authService.ListInstructors(ac.DB, c)
}

func (ac *AuthController) QRGenerate(c *fiber.Ctx) error {
	return authService.QRGenerate(c)
}

func (ac *AuthController) QRVerify(c *fiber.Ctx) error {
	return authService.QRVerify(c)
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	return authService.ChangePassword(ac.DB, c)
}
