package domain

import "time"

// EventType describes a bookable service offering and the slot arithmetic
// parameters attached to it. All durations are minutes.
type EventType struct {
	ID         int64
	ProviderID int64
	Name       string

	DurationMinutes      int
	BufferBeforeMinutes  int
	BufferAfterMinutes   int
	MinimumNoticeMinutes int
	SlotIntervalMinutes  int

	// RequiresConfirmation: бронирование создается в статусе pending
	// и ждёт подтверждения провайдера
	RequiresConfirmation bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the event length.
func (e *EventType) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// BufferBefore returns the lead buffer.
func (e *EventType) BufferBefore() time.Duration {
	return time.Duration(e.BufferBeforeMinutes) * time.Minute
}

// BufferAfter returns the trailing buffer.
func (e *EventType) BufferAfter() time.Duration {
	return time.Duration(e.BufferAfterMinutes) * time.Minute
}

// MinimumNotice returns the shortest allowed lead time before a slot start.
func (e *EventType) MinimumNotice() time.Duration {
	return time.Duration(e.MinimumNoticeMinutes) * time.Minute
}

// SlotInterval returns the step between candidate slot starts.
// Falls back to the event duration when unset.
func (e *EventType) SlotInterval() time.Duration {
	if e.SlotIntervalMinutes <= 0 {
		return e.Duration()
	}
	return time.Duration(e.SlotIntervalMinutes) * time.Minute
}

// InitialStatus returns the status a fresh booking gets for this event type
func (e *EventType) InitialStatus() BookingStatus {
	if e.RequiresConfirmation {
		return StatusPending
	}
	return StatusAccepted
}
