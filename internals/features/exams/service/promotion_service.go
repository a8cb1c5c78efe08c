// file: internals/features/exams/service/promotion_service.go
package service

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	userModel "karateku_backend/internals/features/users/user/model"
	"karateku_backend/internals/notifier"
)

// Store adalah akses data yang dibutuhkan promosi sabuk.
type Store interface {
	UpdateBelt(studentID uuid.UUID, belt userModel.BeltLevel) error
	GetStudent(studentID uuid.UUID) (*userModel.UserModel, error)
}

type PromotionService struct {
	Store  Store
	Mailer notifier.Mailer
}

func NewPromotionService(store Store, mailer notifier.Mailer) *PromotionService {
	return &PromotionService{Store: store, Mailer: mailer}
}

// PromotePassed menaikkan sabuk setiap student yang lulus ke target belt
// ujian dan mengirim email hasil. Per student independen: gagal satu
// (store maupun email) di-log dan tidak membatalkan yang lain.
func (s *PromotionService) PromotePassed(passed []uuid.UUID, targetBelt userModel.BeltLevel, examName string) {
	for _, studentID := range passed {
		if err := s.promote(studentID, targetBelt, examName); err != nil {
			log.Printf("[EXAM ERROR] promosi student %s gagal: %v", studentID, err)
		}
	}
}

func (s *PromotionService) promote(studentID uuid.UUID, targetBelt userModel.BeltLevel, examName string) error {
	if err := s.Store.UpdateBelt(studentID, targetBelt); err != nil {
		return err
	}

	student, err := s.Store.GetStudent(studentID)
	if err != nil {
		return err
	}
	if err := s.Mailer.Send(
		student.Email,
		"Exam Results Available",
		fmt.Sprintf("Your results for the %s are now available. Please log in to view your results.", examName),
	); err != nil {
		log.Printf("[EXAM ERROR] email hasil ke %s gagal: %v", student.Email, err)
	}
	return nil
}
