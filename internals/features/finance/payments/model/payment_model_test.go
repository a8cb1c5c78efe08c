package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "karateku_backend/internals/features/users/user/model"
)

func planPtr(p userModel.MembershipPlan) *userModel.MembershipPlan { return &p }

func TestFeeForPlan(t *testing.T) {
	cases := []struct {
		plan userModel.MembershipPlan
		want float64
	}{
		{userModel.Plan2Classes, 14.99},
		{userModel.Plan3Classes, 22.99},
		{userModel.Plan4Classes, 29.99},
	}
	for _, tc := range cases {
		got, err := FeeForPlan(tc.plan)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestFeeForUnknownPlan(t *testing.T) {
	_, err := FeeForPlan("5classes")
	assert.Error(t, err)
}

func TestNewMonthlyPayment(t *testing.T) {
	instructorID := uuid.New()
	student := &userModel.UserModel{
		ID:             uuid.New(),
		Role:           userModel.RoleStudent,
		MembershipPlan: planPtr(userModel.Plan3Classes),
		InstructorID:   &instructorID,
	}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	p, err := NewMonthlyPayment(student, now)
	require.NoError(t, err)

	assert.Equal(t, student.ID, p.StudentID)
	assert.Equal(t, instructorID, p.InstructorID)
	assert.Equal(t, 22.99, p.Amount)
	assert.Equal(t, PaymentStatusPending, p.Status)
	assert.Equal(t, now.AddDate(0, 1, 0), p.DueDate)
	assert.Nil(t, p.PaidDate)
}

func TestNewMonthlyPaymentWithoutPlan(t *testing.T) {
	student := &userModel.UserModel{ID: uuid.New(), Role: userModel.RoleStudent}
	_, err := NewMonthlyPayment(student, time.Now())
	assert.Error(t, err)
}

func TestMarkPaid(t *testing.T) {
	p := &PaymentModel{Status: PaymentStatusPending}
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	p.MarkPaid(now)

	require.NotNil(t, p.PaidDate)
	assert.Equal(t, PaymentStatusPaid, p.Status)
	assert.Equal(t, now, *p.PaidDate)

	// bayar ulang menimpa paid_date (perilaku yang dipertahankan)
	later := now.Add(48 * time.Hour)
	p.MarkPaid(later)
	assert.Equal(t, later, *p.PaidDate)
}

func TestIsOverdueAt(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	fresh := &PaymentModel{Status: PaymentStatusPending, DueDate: now}
	assert.False(t, fresh.IsOverdueAt(now), "due hari ini belum overdue")

	stale := &PaymentModel{Status: PaymentStatusPending, DueDate: now.AddDate(0, -2, -1)}
	assert.True(t, stale.IsOverdueAt(now))

	exactly := &PaymentModel{Status: PaymentStatusPending, DueDate: now.AddDate(0, -2, 0)}
	assert.True(t, exactly.IsOverdueAt(now), "tepat di threshold ikut tersapu")

	paid := &PaymentModel{Status: PaymentStatusPaid, DueDate: now.AddDate(0, -3, 0)}
	assert.False(t, paid.IsOverdueAt(now))
}
