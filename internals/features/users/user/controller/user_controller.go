// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"karateku_backend/internals/configs"
	"karateku_backend/internals/features/users/user/dto"
	userModel "karateku_backend/internals/features/users/user/model"
	helper "karateku_backend/internals/helpers"
	"karateku_backend/internals/notifier"
)

type UserController struct {
	DB     *gorm.DB
	Mailer notifier.Mailer
}

func NewUserController(db *gorm.DB, mailer notifier.Mailer) *UserController {
	return &UserController{DB: db, Mailer: mailer}
}

// loadOwnedStudent memuat student dan memastikan requester adalah
// instructor-nya. 404 kalau bukan student, 403 kalau bukan pemilik.
func (uc *UserController) loadOwnedStudent(studentID, instructorID uuid.UUID) (*userModel.UserModel, error) {
	var student userModel.UserModel
	if err := uc.DB.First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return nil, err
	}
	if student.Role != userModel.RoleStudent {
		return nil, fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	if student.InstructorID == nil || *student.InstructorID != instructorID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not authorized to manage this student")
	}
	return &student, nil
}

// -----------------------------------------
// ListStudents (GET /users/instructor/:instructorId/students) — instructor
// -----------------------------------------
func (uc *UserController) ListStudents(c *fiber.Ctx) error {
	instructorID, err := uuid.Parse(c.Params("instructorId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid instructor id")
	}

	var students []userModel.UserModel
	if err := uc.DB.
		Where("instructor_id = ? AND role = ?", instructorID, userModel.RoleStudent).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", dto.ToUserResponses(students))
}

// -----------------------------------------
// ToggleBlock (PATCH /users/:studentId/block) — instructor pemilik.
// Toggle manual is_blocked (selain overdue sweep, satu-satunya mutator).
// -----------------------------------------
func (uc *UserController) ToggleBlock(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	instructorID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	student, err := uc.loadOwnedStudent(studentID, instructorID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	student.IsBlocked = !student.IsBlocked
	if err := uc.DB.Model(student).Update("is_blocked", student.IsBlocked).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "ok", dto.ToUserResponse(student))
}

// -----------------------------------------
// UpdateBelt (PATCH /users/:studentId/belt) — instructor pemilik.
// Mutasi belt manual + email selamat best-effort.
// -----------------------------------------
func (uc *UserController) UpdateBelt(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}
	instructorID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.BeltUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := in.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	student, err := uc.loadOwnedStudent(studentID, instructorID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	student.BeltLevel = userModel.BeltLevel(in.BeltLevel)
	if err := uc.DB.Model(student).Update("belt_level", student.BeltLevel).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := uc.Mailer.Send(
		student.Email,
		"Congratulations on Your Belt Promotion!",
		fmt.Sprintf("Congratulations! You have been promoted to %s belt.", student.BeltLevel),
	); err != nil {
		// best-effort: update belt tetap sukses walau email gagal
		log.Printf("[USER ERROR] email promosi ke %s gagal: %v", student.Email, err)
	}

	return helper.JsonUpdated(c, "ok", dto.ToUserResponse(student))
}

// -----------------------------------------
// UpdateProfile (PATCH /users/profile) — self.
// -----------------------------------------
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.ProfileUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := in.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := in.ToUpdates()
	if len(updates) > 0 {
		if err := uc.DB.Model(&userModel.UserModel{}).
			Where("id = ?", userID).
			Updates(updates).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonUpdated(c, "Profile updated", dto.ToUserResponse(&user))
}

// -----------------------------------------
// UploadProfilePhoto (POST /users/profile-photo) — self, multipart.
// -----------------------------------------
func (uc *UserController) UploadProfilePhoto(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	fileHeader, err := c.FormFile("profile_photo")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No file uploaded")
	}

	uploadDir := configs.GetEnv("UPLOAD_DIR", "./uploads")
	photoURL, err := helper.SaveProfilePhoto(uploadDir, fileHeader)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := uc.DB.Model(&userModel.UserModel{}).
		Where("id = ?", userID).
		Update("profile_photo", photoURL).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Profile photo updated successfully", fiber.Map{
		"profile_photo": photoURL,
	})
}

// -----------------------------------------
// SendEmail (POST /users/send-email/:userId) — email ad-hoc.
// Gagal kirim muncul sebagai 500 (ExternalServiceError surface).
// -----------------------------------------
func (uc *UserController) SendEmail(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var in dto.SendEmailDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := in.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, "id = ?", targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := uc.Mailer.Send(user.Email, in.Subject, in.Message); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error sending email")
	}
	return helper.JsonOK(c, "Email sent successfully", nil)
}
