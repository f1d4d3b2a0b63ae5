package reject_reschedule

import "errors"

var (
	// ErrRequestNotFound возвращается, когда запрос на перенос не найден
	ErrRequestNotFound = errors.New("reject_reschedule: reschedule request not found")

	// ErrAlreadyResolved возвращается при повторном разрешении запроса
	ErrAlreadyResolved = errors.New("reject_reschedule: request is already resolved")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reject_reschedule: appointment not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("reject_reschedule: business not found")

	// ErrAccessDenied возвращается, когда пользователь не управляет бизнесом
	ErrAccessDenied = errors.New("reject_reschedule: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reject_reschedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_reschedule: internal error")
)
