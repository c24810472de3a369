package domain

import "errors"

// Default configuration values
const (
	DefaultSlotIntervalMinutes  = 30
	DefaultMinimumNoticeMinutes = 120
	DefaultBufferMinutes        = 0
)

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 hours
	MaxBufferMinutes            = 120
	MaxMinimumNoticeMinutes     = 10080 // 1 week
	MaxCancellationReasonLength = 500
	MaxAttendeeNameLength       = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ErrRuleStartAfterEnd возвращается для правила с start >= end
var ErrRuleStartAfterEnd = errors.New("domain: availability rule start must be before end")

// ActiveStatuses статусы бронирований, занимающих время в календаре.
// Используются в busy-set запросах и в exclusion constraint.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelled,
}
