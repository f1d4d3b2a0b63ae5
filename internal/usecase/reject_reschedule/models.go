package reject_reschedule

import "time"

// Request модель запроса на отклонение переноса
type Request struct {
	ActorID   int64   // Аутентифицированный пользователь (менеджер бизнеса)
	RequestID int64   // ID запроса на перенос
	Message   *string // Сообщение клиенту (опционально)
}

// Response модель ответа с отклонённым запросом
type Response struct {
	RequestID     int64
	AppointmentID int64
	Status        string
	Message       *string
	ResolvedAt    time.Time
}
