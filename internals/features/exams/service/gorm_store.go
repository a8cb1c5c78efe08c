// file: internals/features/exams/service/gorm_store.go
package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "karateku_backend/internals/features/users/user/model"
)

// GormStore adalah implementasi Store di atas database utama.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) UpdateBelt(studentID uuid.UUID, belt userModel.BeltLevel) error {
	return g.db.Model(&userModel.UserModel{}).
		Where("id = ?", studentID).
		Update("belt_level", belt).Error
}

func (g *GormStore) GetStudent(studentID uuid.UUID) (*userModel.UserModel, error) {
	var student userModel.UserModel
	if err := g.db.First(&student, "id = ?", studentID).Error; err != nil {
		return nil, err
	}
	return &student, nil
}
