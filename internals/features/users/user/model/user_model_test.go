package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudent() *UserModel {
	instructorID := uuid.New()
	plan := Plan2Classes
	return &UserModel{
		Email:          "kenta@dojo.test",
		Password:       "secret123",
		FullName:       "Kenta Tanaka",
		Role:           RoleStudent,
		Age:            17,
		Gender:         "male",
		InstructorID:   &instructorID,
		MembershipPlan: &plan,
	}
}

func TestUserValidate_Student(t *testing.T) {
	u := validStudent()
	require.NoError(t, u.Validate())
	assert.Equal(t, BeltWhite, u.BeltLevel, "belt kosong harus default white")
}

func TestUserValidate_StudentRequiresPlanAndInstructor(t *testing.T) {
	u := validStudent()
	u.MembershipPlan = nil
	assert.Error(t, u.Validate())

	u = validStudent()
	u.InstructorID = nil
	assert.Error(t, u.Validate())

	u = validStudent()
	bad := MembershipPlan("5classes")
	u.MembershipPlan = &bad
	assert.Error(t, u.Validate())
}

func TestUserValidate_InstructorNeedsNoPlan(t *testing.T) {
	u := &UserModel{
		Email:    "sensei@dojo.test",
		Password: "secret123",
		FullName: "Aiko Sato",
		Role:     RoleInstructor,
		Age:      42,
		Gender:   "female",
	}
	assert.NoError(t, u.Validate())
}

func TestUserValidate_FieldRules(t *testing.T) {
	u := validStudent()
	u.Email = "not-an-email"
	assert.Error(t, u.Validate())

	u = validStudent()
	u.Password = "short"
	assert.Error(t, u.Validate())

	u = validStudent()
	u.Age = 3
	assert.Error(t, u.Validate())

	u = validStudent()
	u.Role = "sensei"
	assert.Error(t, u.Validate())

	u = validStudent()
	u.BeltLevel = "purple"
	assert.Error(t, u.Validate())
}

func TestBeltAtLeast(t *testing.T) {
	assert.True(t, BeltBlack.AtLeast(BeltWhite))
	assert.True(t, BeltGreen.AtLeast(BeltGreen))
	assert.False(t, BeltWhite.AtLeast(BeltYellow))
	assert.False(t, BeltLevel("purple").AtLeast(BeltWhite))
}
