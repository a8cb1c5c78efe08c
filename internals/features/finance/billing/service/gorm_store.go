// file: internals/features/finance/billing/service/gorm_store.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "karateku_backend/internals/features/finance/payments/model"
	userModel "karateku_backend/internals/features/users/user/model"
)

// GormStore mengimplementasikan Store di atas PostgreSQL via GORM.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) ListActiveStudents() ([]userModel.UserModel, error) {
	var students []userModel.UserModel
	err := s.DB.
		Where("role = ? AND is_blocked = false", userModel.RoleStudent).
		Find(&students).Error
	return students, err
}

func (s *GormStore) CreatePayment(p *paymentModel.PaymentModel) error {
	return s.DB.Create(p).Error
}

func (s *GormStore) ListPendingDueBefore(threshold time.Time) ([]PendingPayment, error) {
	var rows []struct {
		paymentModel.PaymentModel
		StudentEmail string
	}
	err := s.DB.
		Model(&paymentModel.PaymentModel{}).
		Select("payments.*, users.email AS student_email").
		Joins("JOIN users ON users.id = payments.student_id").
		Where("payments.status = ? AND payments.due_date <= ?", paymentModel.PaymentStatusPending, threshold).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]PendingPayment, 0, len(rows))
	for _, r := range rows {
		out = append(out, PendingPayment{
			Payment:      r.PaymentModel,
			StudentID:    r.StudentID,
			StudentEmail: r.StudentEmail,
		})
	}
	return out, nil
}

func (s *GormStore) BlockUser(id uuid.UUID) error {
	return s.DB.
		Model(&userModel.UserModel{}).
		Where("id = ?", id).
		Update("is_blocked", true).Error
}
