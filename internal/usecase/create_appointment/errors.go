package create_appointment

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("create_appointment: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("create_appointment: service is inactive")

	// ErrWorkerNotFound возвращается, когда работник не найден
	ErrWorkerNotFound = errors.New("create_appointment: worker not found")

	// ErrWorkerInactive возвращается, когда работник отключен
	ErrWorkerInactive = errors.New("create_appointment: worker is inactive")

	// ErrWorkerNotEligible возвращается, когда работник не оказывает услугу
	ErrWorkerNotEligible = errors.New("create_appointment: worker does not provide this service")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_appointment: customer not found")

	// ErrAccessDenied возвращается, когда пользователь не управляет бизнесом
	ErrAccessDenied = errors.New("create_appointment: access denied")

	// ErrOutsideWorkingHours возвращается, когда слот вне рабочего графика
	// (нерабочий день, либо услуга не помещается до закрытия)
	ErrOutsideWorkingHours = errors.New("create_appointment: slot is outside working hours")

	// ErrTooLateToBook возвращается при нарушении минимального упреждения на сегодня
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrSlotNoLongerAvailable возвращается, когда слот занят на момент коммита
	ErrSlotNoLongerAvailable = errors.New("create_appointment: slot is no longer available")

	// ErrInvalidDate возвращается при попытке записи на прошедшую дату
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
