package request_reschedule

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	requestReschedule "github.com/Mahamundra/Kalbook-sub000/internal/usecase/request_reschedule"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	RequestedDate string `json:"requestedDate"` // "2025-10-15"
	RequestedTime string `json:"requestedTime"` // "10:00"
}

// RescheduleResponse HTTP response model.
// applied=true - перенос применён сразу, appointment заполнен;
// applied=false - создан ожидающий запрос, reschedule заполнен
type RescheduleResponse struct {
	Applied     bool             `json:"applied"`
	Reschedule  *RescheduleInfo  `json:"reschedule,omitempty"`
	Appointment *AppointmentInfo `json:"appointment,omitempty"`
}

// RescheduleInfo данные созданного запроса на перенос
type RescheduleInfo struct {
	ID            int64  `json:"id"`
	AppointmentID int64  `json:"appointmentId"`
	RequestedDate string `json:"requestedDate"`
	RequestedTime string `json:"requestedTime"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

// AppointmentInfo данные записи после авто-применения переноса
type AppointmentInfo struct {
	ID              int64  `json:"id"`
	AppointmentDate string `json:"appointmentDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(actorID, appointmentID int64) (*requestReschedule.Request, error) {
	// Парсим дату
	requestedDate, err := time.Parse(domain.DateFormat, r.RequestedDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	requestedTime, err := types.NewTimeStringFromString(r.RequestedTime)
	if err != nil {
		return nil, err
	}

	return &requestReschedule.Request{
		ActorID:       actorID,
		AppointmentID: appointmentID,
		RequestedDate: requestedDate,
		RequestedTime: requestedTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestReschedule.Response) *RescheduleResponse {
	out := &RescheduleResponse{Applied: resp.Applied}

	if resp.Reschedule != nil {
		out.Reschedule = &RescheduleInfo{
			ID:            resp.Reschedule.ID,
			AppointmentID: resp.Reschedule.AppointmentID,
			RequestedDate: resp.Reschedule.RequestedDate.Format(domain.DateFormat),
			RequestedTime: resp.Reschedule.RequestedTime.String(),
			Status:        resp.Reschedule.Status,
			CreatedAt:     resp.Reschedule.CreatedAt.Format(time.RFC3339),
		}
	}

	if resp.Appointment != nil {
		out.Appointment = &AppointmentInfo{
			ID:              resp.Appointment.ID,
			AppointmentDate: resp.Appointment.AppointmentDate.Format(domain.DateFormat),
			StartTime:       resp.Appointment.StartTime.String(),
			DurationMinutes: resp.Appointment.DurationMinutes,
			Status:          resp.Appointment.Status,
		}
	}

	return out
}
