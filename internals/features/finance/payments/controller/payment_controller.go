// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"karateku_backend/internals/features/finance/payments/dto"
	paymentModel "karateku_backend/internals/features/finance/payments/model"
	userModel "karateku_backend/internals/features/users/user/model"
	helper "karateku_backend/internals/helpers"
	"karateku_backend/internals/notifier"
)

type PaymentController struct {
	DB     *gorm.DB
	Mailer notifier.Mailer
}

func NewPaymentController(db *gorm.DB, mailer notifier.Mailer) *PaymentController {
	return &PaymentController{DB: db, Mailer: mailer}
}

// Whitelist kolom sort untuk listing payment
var paymentOrderMap = map[string]string{
	"due_date":   "due_date",
	"amount":     "amount",
	"created_at": "created_at",
}

// -----------------------------------------
// Create (POST /payments) — instructor only
// -----------------------------------------
func (pc *PaymentController) Create(c *fiber.Ctx) error {
	var in dto.PaymentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := in.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	m := in.ToModel()
	if err := pc.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Payment created", dto.ToPaymentResponse(m))
}

// -----------------------------------------
// ListByStudent (GET /payments/student/:studentId)
// -----------------------------------------
func (pc *PaymentController) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	p := helper.ParseFiber(c, "due_date", "desc", helper.DefaultOpts)
	orderExpr, _ := p.SafeOrderClause(paymentOrderMap, "due_date")

	q := pc.DB.
		Model(&paymentModel.PaymentModel{}).
		Where("student_id = ?", studentID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []paymentModel.PaymentModel
	if err := q.
		Order(orderExpr).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "ok", dto.ToPaymentResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// ListByInstructor (GET /payments/instructor/:instructorId)
// Query: status (pending|paid|overdue|all)
// -----------------------------------------
func (pc *PaymentController) ListByInstructor(c *fiber.Ctx) error {
	instructorID, err := uuid.Parse(c.Params("instructorId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid instructor id")
	}

	p := helper.ParseFiber(c, "due_date", "desc", helper.DefaultOpts)
	orderExpr, _ := p.SafeOrderClause(map[string]string{
		"due_date":   "payments.due_date",
		"amount":     "payments.amount",
		"created_at": "payments.created_at",
	}, "due_date")

	q := pc.DB.
		Model(&paymentModel.PaymentModel{}).
		Joins("JOIN users ON users.id = payments.student_id").
		Where("users.instructor_id = ? AND users.role = ?", instructorID, userModel.RoleStudent)

	if status := c.Query("status"); status != "" && status != "all" {
		q = q.Where("payments.status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []struct {
		paymentModel.PaymentModel
		StudentName  string
		StudentEmail string
	}
	if err := q.
		Select("payments.*, users.full_name AS student_name, users.email AS student_email").
		Order(orderExpr).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.PaymentResponse, 0, len(rows))
	for i := range rows {
		resp := dto.ToPaymentResponse(&rows[i].PaymentModel)
		resp.StudentName = rows[i].StudentName
		resp.StudentEmail = rows[i].StudentEmail
		out = append(out, resp)
	}
	return helper.JsonList(c, "ok", out, helper.BuildMeta(total, p))
}

// -----------------------------------------
// Pay (PATCH /payments/:id/pay) — student pemilik saja.
// Set status paid unconditional; bayar ulang menimpa paid_date.
// -----------------------------------------
func (pc *PaymentController) Pay(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payment id")
	}
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var payment paymentModel.PaymentModel
	if err := pc.DB.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if payment.StudentID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to pay this payment")
	}

	payment.MarkPaid(time.Now())
	if err := pc.DB.Model(&payment).
		Updates(map[string]any{"status": payment.Status, "paid_date": payment.PaidDate}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonUpdated(c, "Payment paid", dto.ToPaymentResponse(&payment))
}

// -----------------------------------------
// SendReminder (POST /payments/send-reminder/:studentId) — instructor.
// Email manual; kegagalan kirim muncul sebagai 500 ke caller.
// -----------------------------------------
func (pc *PaymentController) SendReminder(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var in dto.ReminderDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := in.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var student userModel.UserModel
	if err := pc.DB.First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := pc.Mailer.Send(student.Email, in.Subject, in.Message); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error sending reminder email")
	}

	return helper.JsonOK(c, "Reminder sent successfully", nil)
}
