package get_availability

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	getAvailability "github.com/Mahamundra/Kalbook-sub000/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BusinessID int64           `json:"businessId"`
	ServiceID  int64           `json:"serviceId"`
	Date       string          `json:"date"`
	Slots      []AvailableSlot `json:"slots"`
}

// AvailableSlot модель доступного слота
type AvailableSlot struct {
	Time      string `json:"time"`
	SpotsLeft int    `json:"spotsLeft"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(businessID, serviceID int64, dateStr string, workerID *int64) (*getAvailability.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
		WorkerID:   workerID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.Time.String(),
			SpotsLeft: slot.SpotsLeft,
		}
	}

	return &AvailabilityResponse{
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
