// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	userModel "karateku_backend/internals/features/users/user/model"
)

var validate = validator.New()

/* ===============================
   Request DTO
=================================*/

// ProfileUpdateDTO: partial update profil sendiri.
// Password dan role sengaja tidak ada di sini — tidak bisa diubah lewat profil.
type ProfileUpdateDTO struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Age      *int    `json:"age" validate:"omitempty,min=4,max=120"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=male female other"`
}

func (in *ProfileUpdateDTO) Validate() error {
	return validate.Struct(in)
}

// ToUpdates mengembalikan map kolom → nilai untuk field yang diisi.
func (in *ProfileUpdateDTO) ToUpdates() map[string]any {
	updates := map[string]any{}
	if in.FullName != nil {
		updates["full_name"] = *in.FullName
	}
	if in.Age != nil {
		updates["age"] = *in.Age
	}
	if in.Gender != nil {
		updates["gender"] = *in.Gender
	}
	return updates
}

type BeltUpdateDTO struct {
	BeltLevel string `json:"belt_level" validate:"required,oneof=white yellow orange green blue brown black"`
}

func (in *BeltUpdateDTO) Validate() error {
	return validate.Struct(in)
}

type SendEmailDTO struct {
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (in *SendEmailDTO) Validate() error {
	return validate.Struct(in)
}

/* ===============================
   Response DTO
=================================*/

type UserResponse struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Role           string     `json:"role"`
	Age            int        `json:"age"`
	Gender         string     `json:"gender"`
	ProfilePhoto   string     `json:"profile_photo,omitempty"`
	BeltLevel      string     `json:"belt_level"`
	InstructorID   *uuid.UUID `json:"instructor_id,omitempty"`
	MembershipPlan string     `json:"membership_plan,omitempty"`
	IsBlocked      bool       `json:"is_blocked"`
	CreatedAt      time.Time  `json:"created_at"`
}

func ToUserResponse(u *userModel.UserModel) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		Role:         string(u.Role),
		Age:          u.Age,
		Gender:       u.Gender,
		ProfilePhoto: u.ProfilePhoto,
		BeltLevel:    string(u.BeltLevel),
		InstructorID: u.InstructorID,
		IsBlocked:    u.IsBlocked,
		CreatedAt:    u.CreatedAt,
	}
	if u.MembershipPlan != nil {
		resp.MembershipPlan = string(*u.MembershipPlan)
	}
	return resp
}

func ToUserResponses(list []userModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for i := range list {
		out = append(out, ToUserResponse(&list[i]))
	}
	return out
}
