package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextMonthlyRun(t *testing.T) {
	midMonth := time.Date(2026, 5, 15, 13, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), nextMonthlyRun(midMonth))

	// tepat di jadwal → bulan berikutnya, bukan sekarang
	onSchedule := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), nextMonthlyRun(onSchedule))

	// akhir tahun
	december := time.Date(2026, 12, 20, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), nextMonthlyRun(december))
}

func TestNextDailyRun(t *testing.T) {
	afternoon := time.Date(2026, 5, 15, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC), nextDailyRun(afternoon))

	midnight := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC), nextDailyRun(midnight))
}

func TestNextWeeklyRun(t *testing.T) {
	// Jumat 2026-05-15 → Senin 2026-05-18 09:00
	friday := time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Weekday(5), friday.Weekday())
	assert.Equal(t, time.Date(2026, 5, 18, 9, 0, 0, 0, time.UTC), nextWeeklyRun(friday))

	// Senin sebelum jam 9 → hari yang sama
	mondayEarly := time.Date(2026, 5, 18, 7, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 5, 18, 9, 0, 0, 0, time.UTC), nextWeeklyRun(mondayEarly))

	// Senin setelah jam 9 → minggu depan
	mondayLate := time.Date(2026, 5, 18, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 5, 25, 9, 0, 0, 0, time.UTC), nextWeeklyRun(mondayLate))
}
