package model

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validator instance
var validate = validator.New()

/* ==============================
   ENUM — role, gender, belt, plan
============================== */

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
)

type BeltLevel string

const (
	BeltWhite  BeltLevel = "white"
	BeltYellow BeltLevel = "yellow"
	BeltOrange BeltLevel = "orange"
	BeltGreen  BeltLevel = "green"
	BeltBlue   BeltLevel = "blue"
	BeltBrown  BeltLevel = "brown"
	BeltBlack  BeltLevel = "black"
)

// beltOrder menentukan urutan progresi sabuk (white < ... < black).
var beltOrder = map[BeltLevel]int{
	BeltWhite:  0,
	BeltYellow: 1,
	BeltOrange: 2,
	BeltGreen:  3,
	BeltBlue:   4,
	BeltBrown:  5,
	BeltBlack:  6,
}

// Rank mengembalikan posisi sabuk dalam progresi; -1 jika tidak dikenal.
func (b BeltLevel) Rank() int {
	if r, ok := beltOrder[b]; ok {
		return r
	}
	return -1
}

// AtLeast true jika b berada pada atau di atas minimum.
func (b BeltLevel) AtLeast(minimum BeltLevel) bool {
	return b.Rank() >= 0 && minimum.Rank() >= 0 && b.Rank() >= minimum.Rank()
}

type MembershipPlan string

const (
	Plan2Classes MembershipPlan = "2classes"
	Plan3Classes MembershipPlan = "3classes"
	Plan4Classes MembershipPlan = "4classes"
)

/* ==============================
   MODEL
============================== */

type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string    `gorm:"size:255;unique;not null" json:"email" validate:"required,email"`
	Password     string    `gorm:"not null" json:"-" validate:"required,min=6"`
	FullName     string    `gorm:"size:100;not null" json:"full_name" validate:"required,min=2,max=100"`
	Role         UserRole  `gorm:"type:varchar(20);not null" json:"role" validate:"required,oneof=student instructor"`
	Age          int       `gorm:"not null" json:"age" validate:"required,min=4,max=120"`
	Gender       string    `gorm:"type:varchar(10);not null" json:"gender" validate:"required,oneof=male female other"`
	ProfilePhoto string    `gorm:"type:text;default:''" json:"profile_photo"`
	BeltLevel    BeltLevel `gorm:"type:varchar(10);not null;default:'white'" json:"belt_level"`

	// Wajib untuk student, harus merujuk user dengan role instructor.
	InstructorID *uuid.UUID `gorm:"type:uuid;index" json:"instructor_id,omitempty"`

	MembershipPlan *MembershipPlan `gorm:"type:varchar(10)" json:"membership_plan,omitempty"`

	// Dimutasi hanya oleh overdue sweep atau aksi manual instructor.
	IsBlocked bool `gorm:"not null;default:false" json:"is_blocked"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// Validate memeriksa aturan field umum + aturan kondisional per role:
// student wajib punya membership plan dan instructor.
func (u *UserModel) Validate() error {
	if u.BeltLevel == "" {
		u.BeltLevel = BeltWhite
	}

	if err := validate.Struct(u); err != nil {
		return err
	}

	if u.Role == RoleStudent {
		if u.MembershipPlan == nil {
			return errors.New("membership_plan wajib diisi untuk student")
		}
		switch *u.MembershipPlan {
		case Plan2Classes, Plan3Classes, Plan4Classes:
		default:
			return errors.New("membership_plan tidak valid")
		}
		if u.InstructorID == nil {
			return errors.New("instructor wajib diisi untuk student")
		}
	}

	if _, ok := beltOrder[u.BeltLevel]; !ok {
		return errors.New("belt_level tidak valid")
	}

	return nil
}
