package request_reschedule

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	ActorID       int64            // Аутентифицированный пользователь (владелец записи)
	AppointmentID int64            // ID переносимой записи
	RequestedDate time.Time        // Новая дата
	RequestedTime types.TimeString // Новое время начала
}

// RescheduleInfo данные созданного запроса на перенос
type RescheduleInfo struct {
	ID            int64
	AppointmentID int64
	RequestedDate time.Time
	RequestedTime types.TimeString
	Status        string
	CreatedAt     time.Time
}

// AppointmentInfo данные записи после авто-применения переноса
type AppointmentInfo struct {
	ID              int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
}

// Response модель ответа на запрос переноса.
// Applied=true - перенос применён сразу (подтверждение не требуется),
// Appointment заполнен. Applied=false - создан ожидающий запрос,
// Reschedule заполнен, запись не изменена.
type Response struct {
	Applied     bool
	Reschedule  *RescheduleInfo
	Appointment *AppointmentInfo
}
