package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrEventTypeNotFound возвращается, когда тип события не найден
	ErrEventTypeNotFound = errors.New("create_booking: event type not found")

	// ErrSlotNotAvailable возвращается, когда запрошенный слот занят -
	// вызывающий должен перечитать слоты и выбрать другой
	ErrSlotNotAvailable = errors.New("create_booking: slot is no longer available")

	// ErrOutsideWorkingHours возвращается, когда запрошенное окно не
	// помещается в рабочие часы провайдера
	ErrOutsideWorkingHours = errors.New("create_booking: slot is outside working hours")

	// ErrNoticeViolation возвращается, когда старт нарушает minimum notice
	ErrNoticeViolation = errors.New("create_booking: minimum booking notice violated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrTryAgain возвращается при временной недоступности источников
	// занятости до начала транзакции
	ErrTryAgain = errors.New("create_booking: busy sources unavailable, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
