// file: internals/features/exams/dto/exam_dto.go
package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	examModel "karateku_backend/internals/features/exams/model"
	userModel "karateku_backend/internals/features/users/user/model"
)

var validate = validator.New()

/* ===============================
   Request DTO
=================================*/

type EligibilityDTO struct {
	MinimumBelt           string `json:"minimum_belt" validate:"required,oneof=white yellow orange green blue brown"`
	MinimumTrainingMonths int    `json:"minimum_training_months" validate:"required,min=1"`
}

type ExamCreateDTO struct {
	ExamName                string         `json:"exam_name" validate:"required,min=2,max=100"`
	ExamDate                time.Time      `json:"exam_date" validate:"required"`
	MaxRegistrants          int            `json:"max_registrants" validate:"required,min=1"`
	TargetBelt              string         `json:"target_belt" validate:"required,oneof=yellow orange green blue brown black"`
	EligibilityRequirements EligibilityDTO `json:"eligibility_requirements" validate:"required"`
}

func (in *ExamCreateDTO) Validate() error {
	return validate.Struct(in)
}

func (in *ExamCreateDTO) ToModel(instructorID uuid.UUID) *examModel.ExamModel {
	return &examModel.ExamModel{
		ExamName:              in.ExamName,
		InstructorID:          instructorID,
		ExamDate:              in.ExamDate,
		MaxRegistrants:        in.MaxRegistrants,
		TargetBelt:            userModel.BeltLevel(in.TargetBelt),
		MinimumBelt:           userModel.BeltLevel(in.EligibilityRequirements.MinimumBelt),
		MinimumTrainingMonths: in.EligibilityRequirements.MinimumTrainingMonths,
		Status:                examModel.ExamStatusUpcoming,
	}
}

type ExamStatusUpdateDTO struct {
	Status string `json:"status" validate:"required,oneof=upcoming ongoing completed cancelled"`
}

func (in *ExamStatusUpdateDTO) Validate() error {
	return validate.Struct(in)
}

type ExamResultDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Passed    bool      `json:"passed"`
	Notes     string    `json:"notes"`
}

type ExamGradeDTO struct {
	Results []ExamResultDTO `json:"results" validate:"required,min=1,dive"`
}

func (in *ExamGradeDTO) Validate() error {
	return validate.Struct(in)
}

func (in *ExamGradeDTO) ToResults() []examModel.ExamResult {
	out := make([]examModel.ExamResult, 0, len(in.Results))
	for _, r := range in.Results {
		out = append(out, examModel.ExamResult{
			StudentID: r.StudentID,
			Passed:    r.Passed,
			Notes:     r.Notes,
		})
	}
	return out
}

/* ===============================
   Response DTO
=================================*/

type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	BeltLevel string    `json:"belt_level,omitempty"`
}

type ExamResponse struct {
	ID                    uuid.UUID              `json:"id"`
	ExamName              string                 `json:"exam_name"`
	Instructor            *UserSummary           `json:"instructor,omitempty"`
	ExamDate              time.Time              `json:"exam_date"`
	MaxRegistrants        int                    `json:"max_registrants"`
	TargetBelt            string                 `json:"target_belt"`
	MinimumBelt           string                 `json:"minimum_belt"`
	MinimumTrainingMonths int                    `json:"minimum_training_months"`
	Status                string                 `json:"status"`
	Registrants           []UserSummary          `json:"registrants"`
	Results               []examModel.ExamResult `json:"results,omitempty"`
	CreatedAt             time.Time              `json:"created_at"`
}

func ToExamResponse(e *examModel.ExamModel, instructor *userModel.UserModel, registrants []userModel.UserModel) ExamResponse {
	resp := ExamResponse{
		ID:                    e.ID,
		ExamName:              e.ExamName,
		ExamDate:              e.ExamDate,
		MaxRegistrants:        e.MaxRegistrants,
		TargetBelt:            string(e.TargetBelt),
		MinimumBelt:           string(e.MinimumBelt),
		MinimumTrainingMonths: e.MinimumTrainingMonths,
		Status:                string(e.Status),
		Registrants:           []UserSummary{},
		Results:               e.Results,
		CreatedAt:             e.CreatedAt,
	}
	if instructor != nil {
		resp.Instructor = &UserSummary{ID: instructor.ID, FullName: instructor.FullName, Email: instructor.Email}
	}
	for i := range registrants {
		r := &registrants[i]
		resp.Registrants = append(resp.Registrants, UserSummary{
			ID: r.ID, FullName: r.FullName, Email: r.Email, BeltLevel: string(r.BeltLevel),
		})
	}
	return resp
}
