package approve_reschedule

import (
	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	approveReschedule "github.com/Mahamundra/Kalbook-sub000/internal/usecase/approve_reschedule"
)

// ApproveRescheduleResponse HTTP response model
type ApproveRescheduleResponse struct {
	RequestID       int64  `json:"requestId"`
	AppointmentID   int64  `json:"appointmentId"`
	AppointmentDate string `json:"appointmentDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *approveReschedule.Response) *ApproveRescheduleResponse {
	return &ApproveRescheduleResponse{
		RequestID:       resp.RequestID,
		AppointmentID:   resp.AppointmentID,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
	}
}
