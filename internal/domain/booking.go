package domain

import (
	"time"

	"github.com/salonhq/booking-engine/pkg/interval"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAccepted  BookingStatus = "accepted"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// IsTerminal returns true if no transition is permitted out of the status.
// Accepted is terminal for status changes other than cancellation, but an
// accepted booking can still be rescheduled in place.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// IsValid reports whether s is one of the known statuses.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Booking represents a reserved time slot for a provider.
// Start/End are absolute UTC instants; EffectiveStart/EffectiveEnd are the
// same window expanded by the event type's buffers and are what overlap
// checks (and the storage exclusion constraint) operate on.
type Booking struct {
	ID          int64
	UID         string // внешний идентификатор для ссылок lookup/reschedule/cancel
	ProviderID  int64
	EventTypeID int64

	Start          time.Time
	End            time.Time
	EffectiveStart time.Time
	EffectiveEnd   time.Time

	Status BookingStatus

	Attendee Attendee

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Attendee holds the contact details captured with a booking.
// An attendee is owned by exactly one booking.
type Attendee struct {
	Name     string
	Email    string
	Phone    *string
	Timezone string
	Locale   string
}

// IsActive returns true if the booking occupies calendar time
// (counts towards the busy set).
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// CanBeConfirmed returns true if the provider may accept the booking
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeDeclined returns true if the provider may reject the booking
func (b *Booking) CanBeDeclined() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if either party may cancel the booking
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// CanBeRescheduled returns true if the booking may be moved to a new slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusAccepted
}

// CanTransitionTo validates a status transition per the lifecycle rules:
// pending -> accepted | rejected | cancelled, accepted -> cancelled.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch next {
	case StatusAccepted, StatusRejected:
		return b.Status == StatusPending
	case StatusCancelled:
		return b.CanBeCancelled()
	default:
		return false
	}
}

// Interval returns the booked [Start, End) window.
func (b *Booking) Interval() interval.Interval {
	return interval.New(b.Start, b.End)
}

// EffectiveInterval returns the buffer-expanded window the booking blocks.
func (b *Booking) EffectiveInterval() interval.Interval {
	return interval.New(b.EffectiveStart, b.EffectiveEnd)
}

// ProviderBookingsFilter фильтр для выборки бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID      int64          // Обязательный параметр
	From            *time.Time     // Начало UTC окна (опционально)
	To              *time.Time     // Конец UTC окна (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли rejected/cancelled
	ExcludeID       *int64         // Исключить бронирование (для reschedule)
}
