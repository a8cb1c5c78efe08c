// file: internals/scheduler/billing_scheduler.go
//
// Driver timer untuk billing lifecycle engine. Satu goroutine per job,
// tidur sampai jadwal berikutnya lalu invoke job dengan time.Now().
// Tidak ada guard overlap terhadap run sebelumnya yang lambat.
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	billing "karateku_backend/internals/features/finance/billing/service"
	"karateku_backend/internals/notifier"
)

// StartBillingSchedulers memasang tiga jadwal:
//   - generate tagihan bulanan: tanggal 1, 00:00
//   - overdue sweep: harian, 00:00
//   - payment reminder: Senin, 09:00
func StartBillingSchedulers(db *gorm.DB, mailer notifier.Mailer) {
	svc := billing.NewBillingService(billing.NewGormStore(db), mailer)

	go runOnSchedule("monthly-charges", nextMonthlyRun, func(now time.Time) {
		if err := svc.GenerateMonthlyCharges(now); err != nil {
			log.Printf("[SCHEDULER ERROR] monthly-charges: %v", err)
		}
	})

	go runOnSchedule("overdue-sweep", nextDailyRun, func(now time.Time) {
		if err := svc.BlockOverdueAccounts(now); err != nil {
			log.Printf("[SCHEDULER ERROR] overdue-sweep: %v", err)
		}
	})

	go runOnSchedule("payment-reminders", nextWeeklyRun, func(now time.Time) {
		if err := svc.SendUpcomingReminders(now); err != nil {
			log.Printf("[SCHEDULER ERROR] payment-reminders: %v", err)
		}
	})

	log.Println("✅ Billing scheduler aktif (monthly/daily/weekly).")
}

func runOnSchedule(name string, next func(time.Time) time.Time, job func(time.Time)) {
	for {
		now := time.Now()
		wait := next(now).Sub(now)
		log.Printf("[SCHEDULER] %s: run berikutnya dalam %s", name, wait.Round(time.Second))
		time.Sleep(wait)

		log.Printf("[SCHEDULER] %s: mulai", name)
		job(time.Now())
	}
}

// nextMonthlyRun: 00:00 tanggal 1 bulan berikutnya.
func nextMonthlyRun(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if !now.Before(first) {
		first = first.AddDate(0, 1, 0)
	}
	return first
}

// nextDailyRun: 00:00 hari berikutnya.
func nextDailyRun(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !now.Before(day) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// nextWeeklyRun: Senin 09:00 terdekat berikutnya.
func nextWeeklyRun(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())
	offset := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	candidate := day.AddDate(0, 0, offset)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}
