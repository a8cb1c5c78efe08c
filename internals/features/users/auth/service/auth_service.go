// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"karateku_backend/internals/cache"
	"karateku_backend/internals/configs"
	paymentModel "karateku_backend/internals/features/finance/payments/model"
	userDTO "karateku_backend/internals/features/users/user/dto"
	userModel "karateku_backend/internals/features/users/user/model"
	helper "karateku_backend/internals/helpers"
	"karateku_backend/internals/notifier"
)

const tokenValidity = 30 * 24 * time.Hour

// issueToken membuat JWT bearer 30 hari dengan claim id.
func issueToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID.String(),
		"exp": time.Now().Add(tokenValidity).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

/* ========================== REGISTER ========================== */

type registerInput struct {
	Email          string     `json:"email"`
	Password       string     `json:"password"`
	FullName       string     `json:"full_name"`
	Role           string     `json:"role"`
	Age            int        `json:"age"`
	Gender         string     `json:"gender"`
	InstructorID   *uuid.UUID `json:"instructor_id"`
	MembershipPlan string     `json:"membership_plan"`
}

// Register membuat user baru. Student juga langsung dibuatkan payment
// pertama (tarif dari plan, jatuh tempo hari ini, pending).
func Register(db *gorm.DB, mailer notifier.Mailer, c *fiber.Ctx) error {
	var in registerInput
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	var existing userModel.UserModel
	if err := db.Where("email = ?", in.Email).First(&existing).Error; err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	user := userModel.UserModel{
		Email:        in.Email,
		Password:     in.Password,
		FullName:     in.FullName,
		Role:         userModel.UserRole(in.Role),
		Age:          in.Age,
		Gender:       in.Gender,
		BeltLevel:    userModel.BeltWhite,
		InstructorID: in.InstructorID,
	}
	if in.Role == string(userModel.RoleStudent) && in.MembershipPlan != "" {
		plan := userModel.MembershipPlan(in.MembershipPlan)
		user.MembershipPlan = &plan
	}

	if err := user.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Instructor referensi harus benar-benar instructor.
	if user.Role == userModel.RoleStudent {
		var instructor userModel.UserModel
		if err := db.First(&instructor, "id = ?", *user.InstructorID).Error; err != nil ||
			instructor.Role != userModel.RoleInstructor {
			return helper.JsonError(c, fiber.StatusBadRequest, "instructor tidak valid")
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	user.Password = string(hashed)

	if err := db.Create(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// Payment pertama untuk student, due hari ini.
	if user.Role == userModel.RoleStudent {
		amount, ferr := paymentModel.FeeForPlan(*user.MembershipPlan)
		if ferr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, ferr.Error())
		}
		payment := paymentModel.PaymentModel{
			StudentID:      user.ID,
			InstructorID:   *user.InstructorID,
			Amount:         amount,
			DueDate:        time.Now(),
			Status:         paymentModel.PaymentStatusPending,
			MembershipPlan: *user.MembershipPlan,
		}
		if err := db.Create(&payment).Error; err != nil {
			log.Printf("[AUTH ERROR] gagal buat payment awal untuk %s: %v", user.ID, err)
		}

		if err := mailer.Send(
			user.Email,
			"Welcome to the Dojo",
			"Your registration is complete. Your first membership payment is due today.",
		); err != nil {
			log.Printf("[AUTH ERROR] email welcome ke %s gagal: %v", user.Email, err)
		}
	}

	token, err := issueToken(user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	return helper.JsonCreated(c, "Registered", fiber.Map{"token": token})
}

/* ========================== LOGIN ========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	var user userModel.UserModel
	if err := db.Where("email = ?", in.Email).First(&user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if user.IsBlocked {
		return helper.JsonError(c, fiber.StatusForbidden, "Account is blocked due to overdue payments")
	}

	token, err := issueToken(user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}
	return helper.JsonOK(c, "Logged in", fiber.Map{"token": token})
}

/* ========================== ME ========================== */

// Me mengembalikan profil user saat ini dengan instructor/students ter-resolve.
func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	resp := fiber.Map{"user": userDTO.ToUserResponse(&user)}

	if user.Role == userModel.RoleStudent && user.InstructorID != nil {
		var instructor userModel.UserModel
		if err := db.Select("id", "full_name", "email").
			First(&instructor, "id = ?", *user.InstructorID).Error; err == nil {
			resp["instructor"] = fiber.Map{
				"id": instructor.ID, "full_name": instructor.FullName, "email": instructor.Email,
			}
		}
	}
	if user.Role == userModel.RoleInstructor {
		var students []userModel.UserModel
		if err := db.Select("id", "full_name", "email", "belt_level").
			Where("instructor_id = ? AND role = ?", user.ID, userModel.RoleStudent).
			Find(&students).Error; err == nil {
			out := make([]fiber.Map, 0, len(students))
			for _, s := range students {
				out = append(out, fiber.Map{
					"id": s.ID, "full_name": s.FullName, "email": s.Email, "belt_level": s.BeltLevel,
				})
			}
			resp["students"] = out
		}
	}

	return helper.JsonOK(c, "ok", resp)
}

/* ========================== INSTRUCTOR LIST ========================== */

func ListInstructors(db *gorm.DB, c *fiber.Ctx) error {
	var instructors []userModel.UserModel
	if err := db.Select("id", "full_name", "email").
		Where("role = ? AND is_blocked = false", userModel.RoleInstructor).
		Find(&instructors).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]fiber.Map, 0, len(instructors))
	for _, i := range instructors {
		out = append(out, fiber.Map{"id": i.ID, "full_name": i.FullName, "email": i.Email})
	}
	return helper.JsonOK(c, "ok", out)
}

/* ========================== QR LOGIN ========================== */

const qrTokenTTLSeconds = 300 // 5 menit

// QRGenerate membuat token QR sekali pakai dan menyimpannya di cache.
func QRGenerate(c *fiber.Ctx) error {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate token")
	}
	token := hex.EncodeToString(buf)

	cache.Tokens.Set("qr-"+token, "", qrTokenTTLSeconds)
	return helper.JsonOK(c, "ok", fiber.Map{"token": token})
}

// QRVerify menukar token QR valid dengan JWT baru; token langsung dihapus.
func QRVerify(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	if _, ok := cache.Tokens.Get("qr-" + in.Token); !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired QR code")
	}

	authToken, err := issueToken(userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	cache.Tokens.Delete("qr-" + in.Token)
	return helper.JsonOK(c, "ok", fiber.Map{"token": authToken})
}

/* ========================== CHANGE PASSWORD ========================== */

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var in struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if len(in.NewPassword) < 6 {
		return helper.JsonError(c, fiber.StatusBadRequest, "New password must be at least 6 characters")
	}

	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Current password is incorrect")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}

	if err := db.Model(&user).Update("password", string(newHash)).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return helper.JsonUpdated(c, "Password updated successfully", nil)
}
