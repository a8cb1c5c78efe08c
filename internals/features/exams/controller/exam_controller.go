// file: internals/features/exams/controller/exam_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"karateku_backend/internals/features/exams/dto"
	examModel "karateku_backend/internals/features/exams/model"
	examService "karateku_backend/internals/features/exams/service"
	userModel "karateku_backend/internals/features/users/user/model"
	helper "karateku_backend/internals/helpers"
	"karateku_backend/internals/notifier"
)

type ExamController struct {
	DB       *gorm.DB
	Mailer   notifier.Mailer
	Promoter *examService.PromotionService
}

func NewExamController(db *gorm.DB, mailer notifier.Mailer) *ExamController {
	return &ExamController{
		DB:       db,
		Mailer:   mailer,
		Promoter: examService.NewPromotionService(examService.NewGormStore(db), mailer),
	}
}

// resolve memuat instructor + registrant users untuk response DTO.
func (ec *ExamController) resolve(exam *examModel.ExamModel) dto.ExamResponse {
	var instructor userModel.UserModel
	var instructorPtr *userModel.UserModel
	if err := ec.DB.First(&instructor, "id = ?", exam.InstructorID).Error; err == nil {
		instructorPtr = &instructor
	}

	var registrants []userModel.UserModel
	if len(exam.Registrants) > 0 {
		ids := make([]uuid.UUID, len(exam.Registrants))
		copy(ids, exam.Registrants)
		if err := ec.DB.Where("id IN ?", ids).Find(&registrants).Error; err != nil {
			log.Printf("[EXAM ERROR] gagal resolve registrants exam %s: %v", exam.ID, err)
		}
	}
	return dto.ToExamResponse(exam, instructorPtr, registrants)
}

// -----------------------------------------
// Create (POST /exams) — instructor only.
// Broadcast ke student eligible best-effort: kegagalan email per student
// maupun kegagalan query tidak menggagalkan pembuatan exam.
// -----------------------------------------
func (ec *ExamController) Create(c *fiber.Ctx) error {
	instructorID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.ExamCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := in.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	exam := in.ToModel(instructorID)
	if err := ec.DB.Create(exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ec.notifyEligibleStudents(exam)

	return helper.JsonCreated(c, "Exam created", ec.resolve(exam))
}

func (ec *ExamController) notifyEligibleStudents(exam *examModel.ExamModel) {
	var eligible []userModel.UserModel
	if err := ec.DB.
		Where("role = ? AND belt_level = ? AND is_blocked = false",
			userModel.RoleStudent, exam.MinimumBelt).
		Find(&eligible).Error; err != nil {
		log.Printf("[EXAM ERROR] gagal ambil student eligible untuk exam %s: %v", exam.ID, err)
		return
	}

	body := fmt.Sprintf("A new exam %q for %s belt is available on %s.",
		exam.ExamName, exam.TargetBelt, exam.ExamDate.Format("01/02/2006"))
	for _, student := range eligible {
		if err := ec.Mailer.Send(student.Email, "New Exam Available", body); err != nil {
			log.Printf("[EXAM ERROR] email ke %s gagal: %v", student.Email, err)
			continue
		}
	}
}

// -----------------------------------------
// List (GET /exams) — filter opsional belt/status ("all" = tanpa filter)
// -----------------------------------------
func (ec *ExamController) List(c *fiber.Ctx) error {
	// Pagination + sorting via helper
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	orderExpr, _ := p.SafeOrderClause(map[string]string{
		"created_at": "created_at",
		"exam_date":  "exam_date",
	}, "created_at")

	q := ec.DB.Model(&examModel.ExamModel{})

	if belt := c.Query("belt"); belt != "" && belt != "all" {
		q = q.Where("target_belt = ?", belt)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var exams []examModel.ExamModel
	if err := q.
		Order(orderExpr).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		out = append(out, ec.resolve(&exams[i]))
	}
	return helper.JsonList(c, "ok", out, helper.BuildMeta(total, p))
}

// -----------------------------------------
// GetByID (GET /exams/:id)
// -----------------------------------------
func (ec *ExamController) GetByID(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	var exam examModel.ExamModel
	if err := ec.DB.First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "ok", ec.resolve(&exam))
}

// -----------------------------------------
// Register (POST /exams/:id/register) — student self-service.
// Read-modify-write dalam transaksi + row lock supaya registrasi
// bersamaan tidak bisa melewati kapasitas.
// Penuh → 409; sudah terdaftar → no-op sukses.
// -----------------------------------------
func (ec *ExamController) Register(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid exam id")
	}
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var exam examModel.ExamModel
	txErr := ec.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&exam, "id = ?", examID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Exam not found")
			}
			return err
		}

		switch exam.Register(studentID) {
		case examModel.RegisterFull:
			return fiber.NewError(fiber.StatusConflict, "Exam is full")
		case examModel.RegisterAlreadyRegistered:
			return nil // idempotent, tidak menulis apa pun
		}

		return tx.Model(&exam).Update("registrants", exam.Registrants).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	return helper.JsonOK(c, "Registered", ec.resolve(&exam))
}

// -----------------------------------------
// Grade (POST /exams/:examId/results) — instructor.
// Results diganti wholesale + status completed; setiap student yang lulus
// dipromosikan ke target belt dan di-email best-effort.
// -----------------------------------------
func (ec *ExamController) Grade(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid exam id")
	}

	var in dto.ExamGradeDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := in.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var exam examModel.ExamModel
	if err := ec.DB.First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	passed := exam.ApplyResults(in.ToResults(), time.Now())

	if err := ec.DB.Model(&exam).
		Updates(map[string]any{"results": exam.Results, "status": exam.Status}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	ec.Promoter.PromotePassed(passed, exam.TargetBelt, exam.ExamName)

	return helper.JsonOK(c, "Exam graded", ec.resolve(&exam))
}

// -----------------------------------------
// ListRegistered (GET /exams/registered/:studentId)
// Exam upcoming/ongoing yang memuat student di registrants (JSONB contains).
// -----------------------------------------
func (ec *ExamController) ListRegistered(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var exams []examModel.ExamModel
	if err := ec.DB.
		Where("status IN ? AND registrants @> ?",
			[]examModel.ExamStatus{examModel.ExamStatusUpcoming, examModel.ExamStatusOngoing},
			fmt.Sprintf(`["%s"]`, studentID)).
		Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		out = append(out, ec.resolve(&exams[i]))
	}
	return helper.JsonOK(c, "ok", out)
}

// -----------------------------------------
// ListStudentResults (GET /exams/student/:studentId/results)
// Exam completed yang results-nya memuat student.
// -----------------------------------------
func (ec *ExamController) ListStudentResults(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var exams []examModel.ExamModel
	if err := ec.DB.
		Where("status = ? AND results @> ?",
			examModel.ExamStatusCompleted,
			fmt.Sprintf(`[{"student_id":"%s"}]`, studentID)).
		Order("exam_date DESC").
		Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.ExamResponse, 0, len(exams))
	for i := range exams {
		out = append(out, ec.resolve(&exams[i]))
	}
	return helper.JsonOK(c, "ok", out)
}

// -----------------------------------------
// UpdateStatus (PATCH /exams/:examId/status) — instructor pemilik saja.
// Overwrite langsung, tanpa tabel transisi (nilai di luar enum ditolak DTO).
// -----------------------------------------
func (ec *ExamController) UpdateStatus(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid exam id")
	}
	instructorID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.ExamStatusUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := in.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var exam examModel.ExamModel
	if err := ec.DB.First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if exam.InstructorID != instructorID {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to update this exam")
	}

	exam.Status = examModel.ExamStatus(in.Status)
	if err := ec.DB.Model(&exam).Update("status", exam.Status).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Exam status updated", ec.resolve(&exam))
}

// -----------------------------------------
// Delete (DELETE /exams/:examId) — instructor pemilik, hanya saat upcoming.
// -----------------------------------------
func (ec *ExamController) Delete(c *fiber.Ctx) error {
	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid exam id")
	}
	instructorID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var exam examModel.ExamModel
	if err := ec.DB.First(&exam, "id = ?", examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if exam.InstructorID != instructorID {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to delete this exam")
	}
	if exam.Status != examModel.ExamStatusUpcoming {
		return helper.JsonError(c, fiber.StatusConflict, "Can only delete upcoming exams")
	}

	if err := ec.DB.Delete(&exam).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Exam deleted successfully", nil)
}
