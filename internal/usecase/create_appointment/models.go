package create_appointment

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/internal/domain"
	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ActorID    int64            // Аутентифицированный пользователь (X-User-ID)
	BusinessID int64            // ID бизнеса
	ServiceID  int64            // ID услуги
	WorkerID   int64            // ID работника
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	CreatedBy  domain.CreatedBy // Кто создаёт запись: customer или admin

	// Определение клиента: либо известный ID, либо контактные данные
	// для поиска по телефону / создания нового клиента
	CustomerID    *int64
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string

	Notes *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	BusinessID      int64
	ServiceID       int64
	WorkerID        int64
	CustomerID      int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          string
	CreatedBy       string

	// Денормализованные данные
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
