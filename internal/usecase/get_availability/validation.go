package get_availability

import (
	"fmt"
	"time"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.WorkerID != nil && *req.WorkerID <= 0 {
		return fmt.Errorf("%w: workerID must be positive", ErrInvalidInput)
	}

	return nil
}

// sameDayLeadCutoff возвращает минимальное допустимое время начала слота,
// если запрошенная дата - сегодня. На будущие даты упреждение не действует.
func sameDayLeadCutoff(date, now time.Time) (types.TimeString, bool) {
	if !isSameDay(date, now) {
		return "", false
	}

	cutoff, err := types.NewTimeString(now).AddMinutes(domain.LeadTimeMinutes)
	if err != nil {
		return "", false
	}

	return cutoff, true
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isBeyondHorizon проверяет, что дата дальше окна бронирования: последняя
// доступная дата - сегодня плюс DefaultHorizonDays-1 (горизонт включает сегодня)
func isBeyondHorizon(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	last := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, domain.DefaultHorizonDays-1)
	return dateOnly.After(last)
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
