package domain

import (
	"time"

	"github.com/salonhq/booking-engine/pkg/interval"
	"github.com/salonhq/booking-engine/pkg/types"
)

// Schedule holds a provider's recurring working hours in the provider's
// IANA timezone. Every rule belongs to exactly one schedule.
type Schedule struct {
	ID         int64
	ProviderID int64
	Name       string
	Timezone   string // IANA identifier, например "Europe/Belgrade"
	Rules      []AvailabilityRule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailabilityRule is a recurring working interval: a set of weekdays plus a
// local start and end time of day. Rules on the same weekday may overlap
// (split shifts entered loosely); they are merged before use.
type AvailabilityRule struct {
	ID         int64
	ScheduleID int64
	Weekdays   []time.Weekday
	StartTime  types.TimeString
	EndTime    types.TimeString
}

// AppliesTo returns true if the rule covers the given weekday
func (r *AvailabilityRule) AppliesTo(day time.Weekday) bool {
	for _, wd := range r.Weekdays {
		if wd == day {
			return true
		}
	}
	return false
}

// Validate проверяет инвариант start < end
func (r *AvailabilityRule) Validate() error {
	if err := r.StartTime.Validate(); err != nil {
		return err
	}
	if err := r.EndTime.Validate(); err != nil {
		return err
	}
	if !r.StartTime.IsBefore(r.EndTime) {
		return ErrRuleStartAfterEnd
	}
	return nil
}

// DateOverride marks a provider unavailable for an absolute UTC window
// (out-of-office), superseding recurring rules for its interval.
type DateOverride struct {
	ID         int64
	ProviderID int64
	Reason     string
	Start      time.Time
	End        time.Time
	Enabled    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the override's [Start, End) window.
func (o *DateOverride) Interval() interval.Interval {
	return interval.New(o.Start, o.End)
}

// ExternalBusyInterval is an opaque busy window supplied by the synced
// external calendar. Never created or edited by this service.
type ExternalBusyInterval struct {
	ProviderID int64
	Start      time.Time
	End        time.Time
}

// Interval returns the busy [Start, End) window.
func (e *ExternalBusyInterval) Interval() interval.Interval {
	return interval.New(e.Start, e.End)
}
