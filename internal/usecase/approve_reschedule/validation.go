package approve_reschedule

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// slotStillReachable проверяет, что запрошенный слот ещё можно занять:
// дата не прошла, а на сегодня действует минимальное упреждение.
// Запрос мог ждать одобрения дольше, чем жил его слот
func slotStillReachable(date time.Time, start types.TimeString, now time.Time) bool {
	if isDateInPast(date, now) {
		return false
	}
	if !isSameDay(date, now) {
		return true
	}

	cutoff, err := types.NewTimeString(now).AddMinutes(domain.LeadTimeMinutes)
	if err != nil {
		return false
	}
	return !start.IsBefore(cutoff)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
