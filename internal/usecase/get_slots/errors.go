package get_slots

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("get_slots: provider not found")

	// ErrEventTypeNotFound возвращается, когда тип события не найден
	ErrEventTypeNotFound = errors.New("get_slots: event type not found")

	// ErrInvalidRange возвращается при некорректном окне запроса
	// (to <= from или окно шире настроенного максимума)
	ErrInvalidRange = errors.New("get_slots: invalid query range")

	// ErrInvalidTimezone возвращается при некорректной таймзоне расписания
	ErrInvalidTimezone = errors.New("get_slots: invalid schedule timezone")

	// ErrTryAgain возвращается при временной недоступности источников
	// занятости - запрос можно безопасно повторить
	ErrTryAgain = errors.New("get_slots: busy sources unavailable, try again")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slots: internal error")
)
