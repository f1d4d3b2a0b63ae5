package get_availability

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_availability: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_availability: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена
	ErrServiceInactive = errors.New("get_availability: service is inactive")

	// ErrWorkerNotFound возвращается, когда работник не найден
	ErrWorkerNotFound = errors.New("get_availability: worker not found")

	// ErrWorkerInactive возвращается, когда работник отключен
	ErrWorkerInactive = errors.New("get_availability: worker is inactive")

	// ErrWorkerNotEligible возвращается, когда работник не оказывает услугу
	ErrWorkerNotEligible = errors.New("get_availability: worker does not provide this service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
