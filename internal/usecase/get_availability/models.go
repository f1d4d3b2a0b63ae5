package get_availability

import (
	"time"

	"github.com/Mahamundra/Kalbook-sub000/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата (без времени)
	WorkerID   *int64    // Конкретный работник (опционально)
}

// Slot доступный слот с количеством оставшихся мест
type Slot struct {
	Time      types.TimeString // Время начала слота
	SpotsLeft int              // Оставшиеся места (1 для индивидуальных услуг)
}

// Response модель ответа со списком доступных слотов
// Пустой список - корректный ответ (нерабочий день, всё занято)
type Response struct {
	BusinessID int64
	ServiceID  int64
	Date       time.Time
	Slots      []Slot
}
