package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/booking-engine/internal/domain"
	"github.com/salonhq/booking-engine/pkg/interval"
	"github.com/salonhq/booking-engine/pkg/localtime"
	"github.com/salonhq/booking-engine/pkg/types"
)

func belgradeSchedule(rules ...domain.AvailabilityRule) *domain.Schedule {
	return &domain.Schedule{
		ID:         1,
		ProviderID: 10,
		Timezone:   "Europe/Belgrade",
		Rules:      rules,
	}
}

func weekdaysRule(start, end types.TimeString, days ...time.Weekday) domain.AvailabilityRule {
	return domain.AvailabilityRule{Weekdays: days, StartTime: start, EndTime: end}
}

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := localtime.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func utcWindow(from, to time.Time) interval.Interval {
	return interval.New(from.UTC(), to.UTC())
}

func TestWorkingIntervalsSingleDay(t *testing.T) {
	loc := mustLocation(t, "Europe/Belgrade")
	schedule := belgradeSchedule(
		weekdaysRule("09:00", "17:00", time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
	)

	// Понедельник 2 марта 2026, Белград UTC+1
	window := utcWindow(
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	)

	got, err := WorkingIntervals(schedule, loc, window)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC), got[0].End)
}

func TestWorkingIntervalsSkipsOffDays(t *testing.T) {
	loc := mustLocation(t, "Europe/Belgrade")
	schedule := belgradeSchedule(
		weekdaysRule("09:00", "17:00", time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
	)

	// Суббота 7 марта - воскресенье 8 марта 2026: выходные
	window := utcWindow(
		time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	)

	got, err := WorkingIntervals(schedule, loc, window)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWorkingIntervalsSplitShiftMerged(t *testing.T) {
	loc := mustLocation(t, "Europe/Belgrade")

	// Пересекающиеся правила одного дня сливаются до преобразования в UTC
	schedule := belgradeSchedule(
		weekdaysRule("09:00", "13:00", time.Monday),
		weekdaysRule("12:00", "17:00", time.Monday),
	)

	window := utcWindow(
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	)

	got, err := WorkingIntervals(schedule, loc, window)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC), got[0].End)
}

func TestWorkingIntervalsDisjointShiftsKept(t *testing.T) {
	loc := mustLocation(t, "Europe/Belgrade")
	schedule := belgradeSchedule(
		weekdaysRule("09:00", "12:00", time.Monday),
		weekdaysRule("14:00", "18:00", time.Monday),
	)

	window := utcWindow(
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	)

	got, err := WorkingIntervals(schedule, loc, window)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC), got[0].End)
	assert.Equal(t, time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC), got[1].Start)
	assert.Equal(t, time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC), got[1].End)
}

func TestWorkingIntervalsSpringForward(t *testing.T) {
	loc := mustLocation(t, "Europe/Belgrade")
	schedule := belgradeSchedule(
		weekdaysRule("09:00", "17:00", time.Sunday),
	)

	// 29 марта 2026: переход на летнее время, смещение меняется +1 -> +2.
	// Местные 09:00-17:00 остаются восьмичасовой сменой в UTC 07:00-15:00.
	window := utcWindow(
		time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC),
	)

	got, err := WorkingIntervals(schedule, loc, window)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2026, 3, 29, 7, 0, 0, 0, time.UTC), got[0].Start)
	assert.Equal(t, time.Date(2026, 3, 29, 15, 0, 0, 0, time.UTC), got[0].End)
	assert.Equal(t, 8*time.Hour, got[0].Duration())
}

func TestWorkingIntervalsInvalidRule(t *testing.T) {
	loc := mustLocation(t, "Europe/Belgrade")
	schedule := belgradeSchedule(
		weekdaysRule("17:00", "09:00", time.Monday),
	)

	window := utcWindow(
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	)

	_, err := WorkingIntervals(schedule, loc, window)
	assert.ErrorIs(t, err, domain.ErrRuleStartAfterEnd)
}

func TestWorkingIntervalsCoversEveryDateInWindow(t *testing.T) {
	loc := mustLocation(t, "Europe/Belgrade")
	schedule := belgradeSchedule(
		weekdaysRule("09:00", "17:00",
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
			time.Saturday, time.Sunday),
	)

	// Две полных недели, выровненные по местной полуночи
	window := utcWindow(
		time.Date(2026, 3, 2, 0, 0, 0, 0, loc),
		time.Date(2026, 3, 16, 0, 0, 0, 0, loc),
	)

	got, err := WorkingIntervals(schedule, loc, window)
	require.NoError(t, err)
	assert.Len(t, got, 14)
}

func TestContainsWindow(t *testing.T) {
	working := []interval.Interval{
		utcWindow(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)),
	}

	inside := utcWindow(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC))
	assert.True(t, ContainsWindow(working, inside))

	exact := working[0]
	assert.True(t, ContainsWindow(working, exact))

	sticksOut := utcWindow(time.Date(2026, 3, 2, 15, 45, 0, 0, time.UTC), time.Date(2026, 3, 2, 16, 15, 0, 0, time.UTC))
	assert.False(t, ContainsWindow(working, sticksOut))

	assert.False(t, ContainsWindow([]interval.Interval{}, inside))
}
