package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrBookingNotReschedulable возвращается для терминальных бронирований
	ErrBookingNotReschedulable = errors.New("reschedule_booking: booking is in a terminal state")

	// ErrSlotNotAvailable возвращается, когда целевой слот занят -
	// исходное бронирование при этом остаётся нетронутым
	ErrSlotNotAvailable = errors.New("reschedule_booking: target slot is not available")

	// ErrOutsideWorkingHours возвращается, когда целевое окно не
	// помещается в рабочие часы провайдера
	ErrOutsideWorkingHours = errors.New("reschedule_booking: target slot is outside working hours")

	// ErrNoticeViolation возвращается, когда целевой старт нарушает minimum notice
	ErrNoticeViolation = errors.New("reschedule_booking: minimum booking notice violated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrTryAgain возвращается при временной недоступности источников занятости
	ErrTryAgain = errors.New("reschedule_booking: busy sources unavailable, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
