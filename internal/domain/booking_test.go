package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func bookingWithStatus(status BookingStatus) *Booking {
	return &Booking{ID: 1, UID: "b-1", ProviderID: 10, Status: status}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusAccepted, StatusRejected, StatusCancelled} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, BookingStatus("confirmed").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{name: "pending to accepted", from: StatusPending, to: StatusAccepted, want: true},
		{name: "pending to rejected", from: StatusPending, to: StatusRejected, want: true},
		{name: "pending to cancelled", from: StatusPending, to: StatusCancelled, want: true},
		{name: "accepted to cancelled", from: StatusAccepted, to: StatusCancelled, want: true},
		{name: "accepted to rejected", from: StatusAccepted, to: StatusRejected, want: false},
		{name: "accepted to pending", from: StatusAccepted, to: StatusPending, want: false},
		{name: "cancelled is frozen", from: StatusCancelled, to: StatusAccepted, want: false},
		{name: "cancelled cannot be cancelled again", from: StatusCancelled, to: StatusCancelled, want: false},
		{name: "rejected is frozen", from: StatusRejected, to: StatusCancelled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bookingWithStatus(tt.from).CanTransitionTo(tt.to))
		})
	}
}

func TestLifecyclePredicates(t *testing.T) {
	pending := bookingWithStatus(StatusPending)
	accepted := bookingWithStatus(StatusAccepted)
	cancelled := bookingWithStatus(StatusCancelled)
	rejected := bookingWithStatus(StatusRejected)

	assert.True(t, pending.IsActive())
	assert.True(t, accepted.IsActive())
	assert.False(t, cancelled.IsActive())
	assert.False(t, rejected.IsActive())

	assert.True(t, pending.CanBeConfirmed())
	assert.False(t, accepted.CanBeConfirmed())

	assert.True(t, pending.CanBeDeclined())
	assert.False(t, accepted.CanBeDeclined())

	assert.True(t, pending.CanBeRescheduled())
	assert.True(t, accepted.CanBeRescheduled())
	assert.False(t, cancelled.CanBeRescheduled())
	assert.False(t, rejected.CanBeRescheduled())
}

func TestEffectiveInterval(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	b := &Booking{
		Start:          start,
		End:            start.Add(30 * time.Minute),
		EffectiveStart: start.Add(-10 * time.Minute),
		EffectiveEnd:   start.Add(45 * time.Minute),
	}

	assert.Equal(t, start, b.Interval().Start)
	assert.Equal(t, start.Add(30*time.Minute), b.Interval().End)
	assert.Equal(t, start.Add(-10*time.Minute), b.EffectiveInterval().Start)
	assert.Equal(t, start.Add(45*time.Minute), b.EffectiveInterval().End)
	assert.True(t, b.EffectiveInterval().Contains(b.Interval()))
}

func TestEventTypeSlotInterval(t *testing.T) {
	et := &EventType{DurationMinutes: 45, SlotIntervalMinutes: 15}
	assert.Equal(t, 15*time.Minute, et.SlotInterval())

	// Без явного шага кандидаты идут плотно, шаг равен длительности
	et = &EventType{DurationMinutes: 45}
	assert.Equal(t, 45*time.Minute, et.SlotInterval())
}

func TestEventTypeInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, (&EventType{RequiresConfirmation: true}).InitialStatus())
	assert.Equal(t, StatusAccepted, (&EventType{}).InitialStatus())
}

func TestAvailabilityRuleValidate(t *testing.T) {
	rule := &AvailabilityRule{Weekdays: []time.Weekday{time.Monday}, StartTime: "09:00", EndTime: "17:00"}
	assert.NoError(t, rule.Validate())

	rule = &AvailabilityRule{Weekdays: []time.Weekday{time.Monday}, StartTime: "17:00", EndTime: "09:00"}
	assert.ErrorIs(t, rule.Validate(), ErrRuleStartAfterEnd)

	rule = &AvailabilityRule{Weekdays: []time.Weekday{time.Monday}, StartTime: "09:00", EndTime: "09:00"}
	assert.ErrorIs(t, rule.Validate(), ErrRuleStartAfterEnd)
}

func TestAvailabilityRuleAppliesTo(t *testing.T) {
	rule := &AvailabilityRule{Weekdays: []time.Weekday{time.Monday, time.Wednesday}}

	assert.True(t, rule.AppliesTo(time.Monday))
	assert.True(t, rule.AppliesTo(time.Wednesday))
	assert.False(t, rule.AppliesTo(time.Sunday))
}
