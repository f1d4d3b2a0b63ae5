package reject_reschedule

import (
	"time"

	rejectReschedule "github.com/Mahamundra/Kalbook-sub000/internal/usecase/reject_reschedule"
)

// RejectRescheduleRequest HTTP request model
type RejectRescheduleRequest struct {
	Message *string `json:"message,omitempty"` // Сообщение клиенту (опционально)
}

// RejectRescheduleResponse HTTP response model
type RejectRescheduleResponse struct {
	RequestID     int64   `json:"requestId"`
	AppointmentID int64   `json:"appointmentId"`
	Status        string  `json:"status"`
	Message       *string `json:"message,omitempty"`
	ResolvedAt    string  `json:"resolvedAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rejectReschedule.Response) *RejectRescheduleResponse {
	return &RejectRescheduleResponse{
		RequestID:     resp.RequestID,
		AppointmentID: resp.AppointmentID,
		Status:        resp.Status,
		Message:       resp.Message,
		ResolvedAt:    resp.ResolvedAt.Format(time.RFC3339),
	}
}
