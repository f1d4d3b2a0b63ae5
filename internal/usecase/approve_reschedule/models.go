package approve_reschedule

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// Request модель запроса на одобрение переноса
type Request struct {
	ActorID   int64 // Аутентифицированный пользователь (менеджер бизнеса)
	RequestID int64 // ID запроса на перенос
}

// Response модель ответа с обновлённой записью
type Response struct {
	RequestID       int64
	AppointmentID   int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
}
