// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	userModel "karateku_backend/internals/features/users/user/model"
)

/* ==============================
   ENUM — status payment
============================== */

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	// Catatan: "overdue" ada di enum tapi tidak pernah diset oleh engine;
	// keterlambatan diekspresikan lewat flag is_blocked milik user.
	PaymentStatusOverdue PaymentStatus = "overdue"
	PaymentStatusPaid    PaymentStatus = "paid"
)

/* ==============================
   FEE SCHEDULE — plan → tarif bulanan
============================== */

var feeSchedule = map[userModel.MembershipPlan]float64{
	userModel.Plan2Classes: 14.99,
	userModel.Plan3Classes: 22.99,
	userModel.Plan4Classes: 29.99,
}

// FeeForPlan mengembalikan tarif bulanan untuk plan.
func FeeForPlan(plan userModel.MembershipPlan) (float64, error) {
	fee, ok := feeSchedule[plan]
	if !ok {
		return 0, fmt.Errorf("membership plan tidak dikenal: %q", plan)
	}
	return fee, nil
}

/* ==============================
   MODEL
============================== */

type PaymentModel struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`

	Amount  float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
	DueDate time.Time `gorm:"not null;index" json:"due_date"`

	Status         PaymentStatus             `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	MembershipPlan userModel.MembershipPlan  `gorm:"type:varchar(10);not null" json:"membership_plan"`

	// Terisi jika dan hanya jika status paid.
	PaidDate *time.Time `gorm:"index" json:"paid_date,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

// NewMonthlyPayment membuat tagihan pending untuk satu student:
// tarif dari plan, jatuh tempo satu bulan kalender dari now.
func NewMonthlyPayment(student *userModel.UserModel, now time.Time) (*PaymentModel, error) {
	if student.MembershipPlan == nil || student.InstructorID == nil {
		return nil, fmt.Errorf("student %s tidak punya plan/instructor", student.ID)
	}
	amount, err := FeeForPlan(*student.MembershipPlan)
	if err != nil {
		return nil, err
	}
	return &PaymentModel{
		StudentID:      student.ID,
		InstructorID:   *student.InstructorID,
		Amount:         amount,
		DueDate:        now.AddDate(0, 1, 0),
		Status:         PaymentStatusPending,
		MembershipPlan: *student.MembershipPlan,
	}, nil
}

// MarkPaid mengeset status paid dan paid_date = now.
// Sengaja unconditional: bayar ulang idempoten secara efek, tapi
// menimpa paid_date (perilaku yang dipertahankan dari desain asal).
func (p *PaymentModel) MarkPaid(now time.Time) {
	p.Status = PaymentStatusPaid
	p.PaidDate = &now
}

// IsOverdueAt true jika payment masih pending dan jatuh temponya sudah
// lewat threshold (now - 2 bulan) pada saat sweep.
func (p *PaymentModel) IsOverdueAt(now time.Time) bool {
	threshold := now.AddDate(0, -2, 0)
	return p.Status == PaymentStatusPending && !p.DueDate.After(threshold)
}
