package create_appointment

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	createAppointment "github.com/Mahamundra/Kalbook-sub000/internal/usecase/create_appointment"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BusinessID int64  `json:"businessId"`
	ServiceID  int64  `json:"serviceId"`
	WorkerID   int64  `json:"workerId"`
	Date       string `json:"date"`      // "2025-10-15"
	StartTime  string `json:"startTime"` // "10:00"

	// Клиент, для которого создается запись. Отсутствует при записи
	// клиентом на себя; администратор указывает либо известный ID,
	// либо контактные данные для поиска/создания клиента
	Customer *CustomerRef `json:"customer,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// CustomerRef ссылка на клиента: известный ID или контактные данные
type CustomerRef struct {
	ID    *int64  `json:"id,omitempty"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	ServiceID       int64   `json:"serviceId"`
	WorkerID        int64   `json:"workerId"`
	CustomerID      int64   `json:"customerId"`
	AppointmentDate string  `json:"appointmentDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"createdBy"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Запрос без блока customer - запись клиентом на себя; с блоком customer -
// запись администратором от имени бизнеса
func (r *CreateAppointmentRequest) ToUseCaseRequest(actorID int64) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createAppointment.Request{
		ActorID:    actorID,
		BusinessID: r.BusinessID,
		ServiceID:  r.ServiceID,
		WorkerID:   r.WorkerID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
	}

	if r.Customer == nil {
		req.CreatedBy = domain.CreatedByCustomer
		req.CustomerID = &actorID
	} else {
		req.CreatedBy = domain.CreatedByAdmin
		req.CustomerID = r.Customer.ID
		req.CustomerName = r.Customer.Name
		req.CustomerEmail = r.Customer.Email
		req.CustomerPhone = r.Customer.Phone
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		WorkerID:        resp.WorkerID,
		CustomerID:      resp.CustomerID,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CreatedBy:       resp.CreatedBy,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
