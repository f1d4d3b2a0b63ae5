package request_reschedule

import (
	"fmt"
	"time"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.RequestedDate.IsZero() {
		return fmt.Errorf("%w: requestedDate is required", ErrInvalidInput)
	}

	if req.RequestedTime.IsZero() {
		return fmt.Errorf("%w: requestedTime is required", ErrInvalidInput)
	}

	if err := req.RequestedTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid requestedTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateLeadTime проверяет минимальное упреждение для переноса на сегодня
func validateLeadTime(date time.Time, startTime types.TimeString, now time.Time) error {
	if !isSameDay(date, now) {
		return nil
	}

	cutoff, err := types.NewTimeString(now).AddMinutes(domain.LeadTimeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate lead time cutoff: %v", ErrInternal, err)
	}

	if startTime.IsBefore(cutoff) {
		return fmt.Errorf("%w: must reschedule at least %d minutes in advance", ErrTooLateToBook, domain.LeadTimeMinutes)
	}

	return nil
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
