package create_appointment

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

	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.WorkerID <= 0 {
		return fmt.Errorf("%w: workerID must be positive", ErrInvalidInput)
	}

	if req.CreatedBy != domain.CreatedByCustomer && req.CreatedBy != domain.CreatedByAdmin {
		return fmt.Errorf("%w: createdBy must be customer or admin", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// Без известного клиента нужны все контактные данные для lookup-or-create
	if req.CustomerID == nil {
		if isBlank(req.CustomerName) || isBlank(req.CustomerEmail) || isBlank(req.CustomerPhone) {
			return fmt.Errorf("%w: customer name, email and phone are required", ErrInvalidInput)
		}
	} else if *req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateLeadTime проверяет минимальное упреждение для записи на сегодня
func validateLeadTime(date time.Time, startTime types.TimeString, now time.Time) error {
	if !isSameDay(date, now) {
		return nil
	}

	cutoff, err := types.NewTimeString(now).AddMinutes(domain.LeadTimeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate lead time cutoff: %v", ErrInternal, err)
	}

	if startTime.IsBefore(cutoff) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, domain.LeadTimeMinutes)
	}

	return nil
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
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
