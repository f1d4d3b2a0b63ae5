package approve_reschedule

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на перенос не найден
	ErrRequestNotFound = errors.New("approve_reschedule: reschedule request not found")

	// ErrAlreadyResolved возвращается при повторном разрешении запроса
	ErrAlreadyResolved = errors.New("approve_reschedule: request is already resolved")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("approve_reschedule: appointment not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("approve_reschedule: business not found")

	// ErrAppointmentCancelled возвращается, когда запись уже отменена
	ErrAppointmentCancelled = errors.New("approve_reschedule: appointment is cancelled")

	// ErrSlotNoLongerAvailable возвращается, когда запрошенный слот занят.
	// Запрос остаётся в статусе pending: решение за администратором
	ErrSlotNoLongerAvailable = errors.New("approve_reschedule: slot is no longer available")

	// ErrAccessDenied возвращается, когда пользователь не управляет бизнесом
	ErrAccessDenied = errors.New("approve_reschedule: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_reschedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_reschedule: internal error")
)
