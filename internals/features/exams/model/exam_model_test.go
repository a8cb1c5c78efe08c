package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "karateku_backend/internals/features/users/user/model"
)

func newExam(capacity int) *ExamModel {
	return &ExamModel{
		ID:             uuid.New(),
		ExamName:       "Yellow Belt Exam",
		InstructorID:   uuid.New(),
		ExamDate:       time.Now().AddDate(0, 1, 0),
		MaxRegistrants: capacity,
		TargetBelt:     userModel.BeltYellow,
		MinimumBelt:    userModel.BeltWhite,
		Status:         ExamStatusUpcoming,
	}
}

func TestRegisterCapacityBound(t *testing.T) {
	exam := newExam(2)
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	assert.Equal(t, RegisterAdded, exam.Register(a))
	assert.Equal(t, RegisterAdded, exam.Register(b))
	assert.Equal(t, RegisterFull, exam.Register(c))
	assert.Len(t, exam.Registrants, 2)
}

func TestRegisterIdempotent(t *testing.T) {
	exam := newExam(3)
	a := uuid.New()

	assert.Equal(t, RegisterAdded, exam.Register(a))
	assert.Equal(t, RegisterAlreadyRegistered, exam.Register(a))
	assert.Len(t, exam.Registrants, 1, "re-register tidak boleh menambah list")
}

func TestRegisterAlreadyRegisteredOnFullExam(t *testing.T) {
	exam := newExam(1)
	a := uuid.New()

	require.Equal(t, RegisterAdded, exam.Register(a))
	// student yang sudah terdaftar tetap no-op meski exam penuh
	assert.Equal(t, RegisterAlreadyRegistered, exam.Register(a))
}

func TestIsRegistered(t *testing.T) {
	exam := newExam(3)
	a := uuid.New()

	assert.False(t, exam.IsRegistered(a))
	require.Equal(t, RegisterAdded, exam.Register(a))
	assert.True(t, exam.IsRegistered(a))
	assert.False(t, exam.IsRegistered(uuid.New()))
}

func TestApplyResults(t *testing.T) {
	exam := newExam(5)
	passedStudent, failedStudent := uuid.New(), uuid.New()
	gradedAt := time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC)

	passed := exam.ApplyResults([]ExamResult{
		{StudentID: passedStudent, Passed: true, Notes: "good kata"},
		{StudentID: failedStudent, Passed: false, Notes: "retry kumite"},
	}, gradedAt)

	assert.Equal(t, ExamStatusCompleted, exam.Status)
	require.Len(t, exam.Results, 2)
	for _, r := range exam.Results {
		assert.Equal(t, gradedAt, r.GradedAt)
	}
	require.Len(t, passed, 1)
	assert.Equal(t, passedStudent, passed[0])
}

func TestApplyResultsReplacesWholesale(t *testing.T) {
	exam := newExam(5)
	first := uuid.New()
	exam.ApplyResults([]ExamResult{{StudentID: first, Passed: true}}, time.Now())

	second := uuid.New()
	exam.ApplyResults([]ExamResult{{StudentID: second, Passed: false}}, time.Now())

	require.Len(t, exam.Results, 1)
	assert.Equal(t, second, exam.Results[0].StudentID)
}

func TestEligibleFilter(t *testing.T) {
	exam := newExam(5)
	exam.MinimumBelt = userModel.BeltYellow

	eligible := &userModel.UserModel{Role: userModel.RoleStudent, BeltLevel: userModel.BeltYellow}
	wrongBelt := &userModel.UserModel{Role: userModel.RoleStudent, BeltLevel: userModel.BeltGreen}
	blocked := &userModel.UserModel{Role: userModel.RoleStudent, BeltLevel: userModel.BeltYellow, IsBlocked: true}
	instructor := &userModel.UserModel{Role: userModel.RoleInstructor, BeltLevel: userModel.BeltYellow}

	assert.True(t, exam.EligibleFilter(eligible))
	assert.False(t, exam.EligibleFilter(wrongBelt))
	assert.False(t, exam.EligibleFilter(blocked))
	assert.False(t, exam.EligibleFilter(instructor))
}

func TestExamStatusValid(t *testing.T) {
	assert.True(t, ExamStatusOngoing.Valid())
	assert.False(t, ExamStatus("archived").Valid())
}

func TestBeltOrdering(t *testing.T) {
	assert.True(t, userModel.BeltBrown.AtLeast(userModel.BeltYellow))
	assert.True(t, userModel.BeltWhite.AtLeast(userModel.BeltWhite))
	assert.False(t, userModel.BeltWhite.AtLeast(userModel.BeltBlack))
	assert.Equal(t, -1, userModel.BeltLevel("purple").Rank())
}
