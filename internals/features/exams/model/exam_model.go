// file: internals/features/exams/model/exam_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	userModel "karateku_backend/internals/features/users/user/model"
)

/* ==============================
   ENUM — status exam
============================== */

type ExamStatus string

const (
	ExamStatusUpcoming  ExamStatus = "upcoming"
	ExamStatusOngoing   ExamStatus = "ongoing"
	ExamStatusCompleted ExamStatus = "completed"
	ExamStatusCancelled ExamStatus = "cancelled"
)

func (s ExamStatus) Valid() bool {
	switch s {
	case ExamStatusUpcoming, ExamStatusOngoing, ExamStatusCompleted, ExamStatusCancelled:
		return true
	}
	return false
}

/* ==============================
   Embedded result (dimiliki row exam, bukan entity terpisah)
============================== */

type ExamResult struct {
	StudentID uuid.UUID `json:"student_id"`
	Passed    bool      `json:"passed"`
	Notes     string    `json:"notes"`
	GradedAt  time.Time `json:"graded_at"`
}

/* ==============================
   MODEL
============================== */

type ExamModel struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExamName     string    `gorm:"size:100;not null" json:"exam_name"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`
	ExamDate     time.Time `gorm:"not null" json:"exam_date"`

	MaxRegistrants int                 `gorm:"not null" json:"max_registrants"`
	TargetBelt     userModel.BeltLevel `gorm:"type:varchar(10);not null" json:"target_belt"`

	// Eligibility requirements
	MinimumBelt           userModel.BeltLevel `gorm:"type:varchar(10);not null" json:"minimum_belt"`
	MinimumTrainingMonths int                 `gorm:"not null" json:"minimum_training_months"`

	Status ExamStatus `gorm:"type:varchar(10);not null;default:'upcoming';index" json:"status"`

	// Registrants & results disimpan embedded (JSONB) di row exam sendiri.
	Registrants datatypes.JSONSlice[uuid.UUID]  `gorm:"type:jsonb" json:"registrants"`
	Results     datatypes.JSONSlice[ExamResult] `gorm:"type:jsonb" json:"results"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ExamModel) TableName() string {
	return "exams"
}

/* ==============================
   Workflow atas state exam
============================== */

type RegisterOutcome int

const (
	RegisterAdded RegisterOutcome = iota
	RegisterAlreadyRegistered
	RegisterFull
)

// Register menambahkan student ke daftar registrant.
// Penuh → RegisterFull; sudah terdaftar → no-op (bukan error).
func (e *ExamModel) Register(studentID uuid.UUID) RegisterOutcome {
	if e.IsRegistered(studentID) {
		return RegisterAlreadyRegistered
	}
	if len(e.Registrants) >= e.MaxRegistrants {
		return RegisterFull
	}
	e.Registrants = append(e.Registrants, studentID)
	return RegisterAdded
}

// IsRegistered true jika student sudah ada di daftar registrant.
func (e *ExamModel) IsRegistered(studentID uuid.UUID) bool {
	for _, id := range e.Registrants {
		if id == studentID {
			return true
		}
	}
	return false
}

// ApplyResults mengganti hasil ujian secara wholesale, stamp setiap entry
// dengan instant grading, set status completed, dan mengembalikan daftar
// student yang lulus (untuk promosi sabuk + notifikasi oleh caller).
func (e *ExamModel) ApplyResults(results []ExamResult, gradedAt time.Time) []uuid.UUID {
	stamped := make([]ExamResult, 0, len(results))
	var passed []uuid.UUID
	for _, r := range results {
		r.GradedAt = gradedAt
		stamped = append(stamped, r)
		if r.Passed {
			passed = append(passed, r.StudentID)
		}
	}
	e.Results = stamped
	e.Status = ExamStatusCompleted
	return passed
}

// EligibleFilter menyaring student yang memenuhi syarat broadcast ujian:
// sabuk sama dengan minimum belt dan tidak diblokir.
func (e *ExamModel) EligibleFilter(u *userModel.UserModel) bool {
	return u.Role == userModel.RoleStudent && !u.IsBlocked && u.BeltLevel == e.MinimumBelt
}
