package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrAlreadyTerminal возвращается при попытке изменить бронирование
	// в терминальном статусе (rejected, cancelled)
	ErrAlreadyTerminal = errors.New("bookings: booking is in a terminal state")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	// (например confirm для уже подтверждённого бронирования)
	ErrInvalidTransition = errors.New("bookings: invalid status transition")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
