// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	paymentModel "karateku_backend/internals/features/finance/payments/model"
	userModel "karateku_backend/internals/features/users/user/model"
)

var validate = validator.New()

/* ===============================
   Request DTO
=================================*/

type PaymentCreateDTO struct {
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	InstructorID   uuid.UUID `json:"instructor_id" validate:"required"`
	Amount         float64   `json:"amount" validate:"required,gt=0"`
	DueDate        time.Time `json:"due_date" validate:"required"`
	MembershipPlan string    `json:"membership_plan" validate:"required,oneof=2classes 3classes 4classes"`
}

func (in *PaymentCreateDTO) Validate() error {
	return validate.Struct(in)
}

func (in *PaymentCreateDTO) ToModel() *paymentModel.PaymentModel {
	return &paymentModel.PaymentModel{
		StudentID:      in.StudentID,
		InstructorID:   in.InstructorID,
		Amount:         in.Amount,
		DueDate:        in.DueDate,
		Status:         paymentModel.PaymentStatusPending,
		MembershipPlan: userModel.MembershipPlan(in.MembershipPlan),
	}
}

type ReminderDTO struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (in *ReminderDTO) Validate() error {
	return validate.Struct(in)
}

/* ===============================
   Response DTO
=================================*/

type PaymentResponse struct {
	ID             uuid.UUID  `json:"id"`
	StudentID      uuid.UUID  `json:"student_id"`
	InstructorID   uuid.UUID  `json:"instructor_id"`
	Amount         float64    `json:"amount"`
	DueDate        time.Time  `json:"due_date"`
	Status         string     `json:"status"`
	MembershipPlan string     `json:"membership_plan"`
	PaidDate       *time.Time `json:"paid_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	// Terisi saat listing per instructor (join ke users).
	StudentName  string `json:"student_name,omitempty"`
	StudentEmail string `json:"student_email,omitempty"`
}

func ToPaymentResponse(m *paymentModel.PaymentModel) PaymentResponse {
	return PaymentResponse{
		ID:             m.ID,
		StudentID:      m.StudentID,
		InstructorID:   m.InstructorID,
		Amount:         m.Amount,
		DueDate:        m.DueDate,
		Status:         string(m.Status),
		MembershipPlan: string(m.MembershipPlan),
		PaidDate:       m.PaidDate,
		CreatedAt:      m.CreatedAt,
	}
}

func ToPaymentResponses(list []paymentModel.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for i := range list {
		out = append(out, ToPaymentResponse(&list[i]))
	}
	return out
}
