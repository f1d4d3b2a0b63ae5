package get_business_appointments

import (
	"strconv"
	"time"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Параметр date задает один день; startDate/endDate - произвольный период
func ToServiceRequest(
	businessID int64,
	userID int64,
	workerIDStr string,
	statusStr string,
	dateStr string,
	startDateStr string,
	endDateStr string,
	includeCancelledStr string,
) (*models.GetBusinessAppointmentsRequest, error) {
	req := &models.GetBusinessAppointmentsRequest{
		UserID:           userID,
		BusinessID:       businessID,
		IncludeCancelled: false, // По умолчанию только активные
	}

	// Парсим workerId если указан
	if workerIDStr != "" {
		workerID, err := strconv.ParseInt(workerIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.WorkerID = &workerID
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим date если указана (один день)
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	// Парсим период startDate/endDate если указан
	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}
	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	// Парсим includeCancelled если указан
	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
