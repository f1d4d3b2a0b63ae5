package request_reschedule

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("request_reschedule: appointment not found")

	// ErrAppointmentCancelled возвращается при попытке перенести отменённую запись
	ErrAppointmentCancelled = errors.New("request_reschedule: appointment is cancelled")

	// ErrRescheduleNotAllowed возвращается, когда бизнес запретил переносы клиентами
	ErrRescheduleNotAllowed = errors.New("request_reschedule: reschedule is not allowed")

	// ErrNoOpReschedule возвращается при переносе на то же самое время
	ErrNoOpReschedule = errors.New("request_reschedule: requested time equals current time")

	// ErrPendingRequestExists возвращается, когда по записи уже есть ожидающий запрос
	ErrPendingRequestExists = errors.New("request_reschedule: pending request already exists")

	// ErrSlotNoLongerAvailable возвращается, когда новый слот занят (при авто-применении)
	ErrSlotNoLongerAvailable = errors.New("request_reschedule: slot is no longer available")

	// ErrOutsideWorkingHours возвращается при авто-применении, когда новый слот
	// вне рабочего графика (нерабочий день, либо услуга не помещается до закрытия)
	ErrOutsideWorkingHours = errors.New("request_reschedule: slot is outside working hours")

	// ErrTooLateToBook возвращается при нарушении минимального упреждения на сегодня
	ErrTooLateToBook = errors.New("request_reschedule: too late to book this slot")

	// ErrInvalidDate возвращается при переносе на прошедшую дату
	ErrInvalidDate = errors.New("request_reschedule: invalid requested date")

	// ErrAccessDenied возвращается, когда перенос запрашивает не владелец записи
	ErrAccessDenied = errors.New("request_reschedule: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("request_reschedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("request_reschedule: internal error")
)
