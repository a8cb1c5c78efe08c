// file: internals/features/finance/billing/service/billing_service.go
//
// Billing lifecycle engine: tiga job terjadwal (generate tagihan bulanan,
// sweep overdue yang memblokir akun, reminder mingguan). Setiap job
// menerima `now` dari caller supaya bisa dites dengan clock tetap.
// Kegagalan per record (store/email) dicatat dan tidak pernah
// membatalkan sisa batch.
package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	paymentModel "karateku_backend/internals/features/finance/payments/model"
	userModel "karateku_backend/internals/features/users/user/model"
	"karateku_backend/internals/notifier"
)

// PendingPayment adalah payment pending dengan email student sudah
// ter-resolve (join di boundary store).
type PendingPayment struct {
	Payment      paymentModel.PaymentModel
	StudentID    uuid.UUID
	StudentEmail string
}

type Store interface {
	// ListActiveStudents mengembalikan semua student yang tidak diblokir.
	ListActiveStudents() ([]userModel.UserModel, error)
	CreatePayment(p *paymentModel.PaymentModel) error
	// ListPendingDueBefore mengembalikan payment pending dengan due date <= threshold.
	ListPendingDueBefore(threshold time.Time) ([]PendingPayment, error)
	BlockUser(id uuid.UUID) error
}

type BillingService struct {
	Store  Store
	Mailer notifier.Mailer
}

func NewBillingService(store Store, mailer notifier.Mailer) *BillingService {
	return &BillingService{Store: store, Mailer: mailer}
}

// GenerateMonthlyCharges membuat satu Payment pending per student aktif,
// jatuh tempo satu bulan dari now, lalu kirim email best-effort.
//
// Catatan: job ini tidak mengecek apakah periode berjalan sudah ditagih.
// Setiap invocation membuat tagihan baru tanpa syarat, jadi scheduler yang
// fire dua kali dalam satu periode menghasilkan tagihan dobel.
func (s *BillingService) GenerateMonthlyCharges(now time.Time) error {
	students, err := s.Store.ListActiveStudents()
	if err != nil {
		return fmt.Errorf("billing: gagal ambil daftar student: %w", err)
	}

	created := 0
	for i := range students {
		student := &students[i]

		payment, err := paymentModel.NewMonthlyPayment(student, now)
		if err != nil {
			log.Printf("[BILLING ERROR] student %s dilewati: %v", student.ID, err)
			continue
		}
		if err := s.Store.CreatePayment(payment); err != nil {
			log.Printf("[BILLING ERROR] gagal buat payment untuk %s: %v", student.ID, err)
			continue
		}
		created++

		if err := s.Mailer.Send(
			student.Email,
			"Monthly Payment Due",
			fmt.Sprintf("Your monthly payment of $%.2f is due. Please log in to make your payment.", payment.Amount),
		); err != nil {
			log.Printf("[BILLING ERROR] email ke %s gagal: %v", student.Email, err)
		}
	}

	log.Printf("[BILLING] Tagihan bulanan selesai: %d payment dibuat dari %d student", created, len(students))
	return nil
}

// BlockOverdueAccounts memblokir user pemilik setiap payment pending yang
// jatuh temponya <= now - 2 bulan, lalu kirim email best-effort.
// Status payment sendiri tidak diubah. User yang sudah terblokir tetap
// tersapu ulang (dan di-email ulang) selama kondisinya masih berlaku.
func (s *BillingService) BlockOverdueAccounts(now time.Time) error {
	threshold := now.AddDate(0, -2, 0)

	overdue, err := s.Store.ListPendingDueBefore(threshold)
	if err != nil {
		return fmt.Errorf("billing: gagal ambil payment overdue: %w", err)
	}

	blocked := 0
	for _, pp := range overdue {
		if err := s.Store.BlockUser(pp.StudentID); err != nil {
			log.Printf("[OVERDUE ERROR] gagal blokir user %s: %v", pp.StudentID, err)
			continue
		}
		blocked++

		if err := s.Mailer.Send(
			pp.StudentEmail,
			"Account Blocked - Overdue Payments",
			"Your account has been blocked due to overdue payments. Please contact your instructor.",
		); err != nil {
			log.Printf("[OVERDUE ERROR] email ke %s gagal: %v", pp.StudentEmail, err)
		}
	}

	log.Printf("[OVERDUE] Sweep selesai: %d akun diblokir dari %d payment", blocked, len(overdue))
	return nil
}

// SendUpcomingReminders mengirim reminder untuk payment pending yang
// jatuh tempo <= now + 7 hari. Tidak ada mutasi state.
func (s *BillingService) SendUpcomingReminders(now time.Time) error {
	threshold := now.AddDate(0, 0, 7)

	upcoming, err := s.Store.ListPendingDueBefore(threshold)
	if err != nil {
		return fmt.Errorf("billing: gagal ambil payment mendatang: %w", err)
	}

	sent := 0
	for _, pp := range upcoming {
		if err := s.Mailer.Send(
			pp.StudentEmail,
			"Payment Reminder",
			fmt.Sprintf("Your payment of $%.2f is due on %s. Please log in to make your payment.",
				pp.Payment.Amount, pp.Payment.DueDate.Format("01/02/2006")),
		); err != nil {
			log.Printf("[REMINDER ERROR] email ke %s gagal: %v", pp.StudentEmail, err)
			continue
		}
		sent++
	}

	log.Printf("[REMINDER] Sweep selesai: %d reminder terkirim dari %d payment", sent, len(upcoming))
	return nil
}
