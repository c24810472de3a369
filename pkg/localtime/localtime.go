// Package localtime converts provider-local wall-clock times into absolute
// UTC instants, resolving daylight-saving transitions deterministically:
// a wall-clock time that falls into a DST gap is shifted forward past the gap,
// and an ambiguous time (repeated during a fall-back fold) resolves to the
// later UTC offset. Pure functions, no I/O.
package localtime

import (
	"errors"
	"fmt"
	"time"

	"github.com/salonhq/booking-engine/pkg/types"
)

var (
	// ErrUnknownTimezone возвращается при неизвестном IANA идентификаторе зоны
	ErrUnknownTimezone = errors.New("localtime: unknown IANA timezone")
)

// LoadLocation resolves an IANA timezone name.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

// Date identifies a calendar date without time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{Year: y, Month: m, Day: d}
}

// Next returns the following calendar date.
func (d Date) Next() Date {
	t := time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	y, m, day := t.Date()
	return Date{Year: y, Month: m, Day: day}
}

// After reports whether d is a later calendar date than other.
func (d Date) After(other Date) bool {
	if d.Year != other.Year {
		return d.Year > other.Year
	}
	if d.Month != other.Month {
		return d.Month > other.Month
	}
	return d.Day > other.Day
}

// Weekday returns the day of week of d.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).Weekday()
}

// ResolveMinutes converts minutes-since-midnight on date d in loc to a UTC instant.
//
// DST handling:
//   - a non-existent wall clock (spring-forward gap) is normalized forward past
//     the gap, which is what time.Date already does;
//   - an ambiguous wall clock (fall-back fold) maps to two instants an offset
//     change apart; the later instant is chosen.
func ResolveMinutes(d Date, minutes int, loc *time.Location) time.Time {
	t := time.Date(d.Year, d.Month, d.Day, minutes/60, minutes%60, 0, 0, loc)

	// time.Date может вернуть раннее вхождение повторённого часа. Если сдвиг
	// на разницу смещений даёт те же стенные часы - время неоднозначно,
	// берём позднее вхождение.
	_, off1 := t.Zone()
	_, off2 := t.Add(time.Hour).Zone()
	if off2 < off1 {
		shifted := t.Add(time.Duration(off1-off2) * time.Second)
		if sameWallClock(t, shifted, loc) {
			return shifted.UTC()
		}
	}

	return t.UTC()
}

// Resolve converts a wall-clock time of day on date d in loc to a UTC instant.
// See ResolveMinutes for transition-day semantics.
func Resolve(d Date, tod types.TimeString, loc *time.Location) (time.Time, error) {
	minutes, err := tod.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return ResolveMinutes(d, minutes, loc), nil
}

// MidnightUTC returns the UTC instant at which date d begins in loc.
func MidnightUTC(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc).UTC()
}

func sameWallClock(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	return a.Hour() == b.Hour() && a.Minute() == b.Minute()
}
