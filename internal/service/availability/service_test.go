package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/booking-engine/internal/domain"
	"github.com/salonhq/booking-engine/internal/integrations/calendarsync"
	"github.com/salonhq/booking-engine/pkg/interval"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error

	gotExcludeID *int64
}

func (f *fakeBookingRepo) GetActiveOverlapping(_ context.Context, _ int64, _, _ time.Time, excludeID *int64) ([]*domain.Booking, error) {
	f.gotExcludeID = excludeID
	return f.bookings, f.err
}

type fakeScheduleRepo struct {
	overrides []*domain.DateOverride
	err       error
}

func (f *fakeScheduleRepo) GetOverridesInRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.DateOverride, error) {
	return f.overrides, f.err
}

type fakeCalendarClient struct {
	intervals []calendarsync.BusyInterval
	err       error
	calls     int
}

func (f *fakeCalendarClient) GetBusyIntervalsWithRetry(_ context.Context, _ int64, _, _ time.Time) ([]calendarsync.BusyInterval, error) {
	f.calls++
	return f.intervals, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func activeBooking(effStart, effEnd time.Time) *domain.Booking {
	return &domain.Booking{
		Status:         domain.StatusAccepted,
		Start:          effStart,
		End:            effEnd,
		EffectiveStart: effStart,
		EffectiveEnd:   effEnd,
	}
}

func TestMergedBusySetCombinesSources(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		bookings: []*domain.Booking{activeBooking(ts(10, 0), ts(10, 45))},
	}
	scheduleRepo := &fakeScheduleRepo{
		overrides: []*domain.DateOverride{
			{Start: ts(12, 0), End: ts(13, 0), Enabled: true},
		},
	}
	calendar := &fakeCalendarClient{
		intervals: []calendarsync.BusyInterval{
			{Start: ts(10, 30), End: ts(11, 30)},
		},
	}

	svc := NewService(bookingRepo, scheduleRepo, calendar, nopLogger{})

	busy, err := svc.MergedBusySet(context.Background(), 10, ts(9, 0), ts(17, 0), BusySetOptions{})
	require.NoError(t, err)

	// Бронирование и внешний интервал пересекаются и сливаются
	require.Len(t, busy, 2)
	assert.Equal(t, interval.New(ts(10, 0), ts(11, 30)), busy[0])
	assert.Equal(t, interval.New(ts(12, 0), ts(13, 0)), busy[1])
}

func TestMergedBusySetSkipExternal(t *testing.T) {
	calendar := &fakeCalendarClient{
		intervals: []calendarsync.BusyInterval{{Start: ts(10, 0), End: ts(11, 0)}},
	}
	svc := NewService(&fakeBookingRepo{}, &fakeScheduleRepo{}, calendar, nopLogger{})

	busy, err := svc.MergedBusySet(context.Background(), 10, ts(9, 0), ts(17, 0), BusySetOptions{SkipExternal: true})
	require.NoError(t, err)

	assert.Empty(t, busy)
	assert.Zero(t, calendar.calls)
}

func TestMergedBusySetPassesExcludeID(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	svc := NewService(bookingRepo, &fakeScheduleRepo{}, &fakeCalendarClient{}, nopLogger{})

	excludeID := int64(42)
	_, err := svc.MergedBusySet(context.Background(), 10, ts(9, 0), ts(17, 0), BusySetOptions{ExcludeBookingID: &excludeID})
	require.NoError(t, err)

	require.NotNil(t, bookingRepo.gotExcludeID)
	assert.Equal(t, excludeID, *bookingRepo.gotExcludeID)
}

func TestMergedBusySetSourceFailure(t *testing.T) {
	svc := NewService(
		&fakeBookingRepo{err: errors.New("db down")},
		&fakeScheduleRepo{},
		&fakeCalendarClient{},
		nopLogger{},
	)

	_, err := svc.MergedBusySet(context.Background(), 10, ts(9, 0), ts(17, 0), BusySetOptions{})
	assert.ErrorIs(t, err, ErrBusyFetch)
}

func TestMergedBusySetExternalFailure(t *testing.T) {
	svc := NewService(
		&fakeBookingRepo{},
		&fakeScheduleRepo{},
		&fakeCalendarClient{err: errors.New("unreachable")},
		nopLogger{},
	)

	_, err := svc.MergedBusySet(context.Background(), 10, ts(9, 0), ts(17, 0), BusySetOptions{})
	assert.ErrorIs(t, err, ErrBusyFetch)
}

func TestMergedBusySetDeterministic(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			activeBooking(ts(14, 0), ts(15, 0)),
			activeBooking(ts(10, 0), ts(10, 30)),
		},
	}
	svc := NewService(bookingRepo, &fakeScheduleRepo{}, &fakeCalendarClient{}, nopLogger{})

	first, err := svc.MergedBusySet(context.Background(), 10, ts(9, 0), ts(17, 0), BusySetOptions{})
	require.NoError(t, err)

	second, err := svc.MergedBusySet(context.Background(), 10, ts(9, 0), ts(17, 0), BusySetOptions{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Упорядоченный непересекающийся набор
	require.Len(t, first, 2)
	assert.True(t, first[0].End.Before(first[1].Start) || first[0].End.Equal(first[1].Start))
}

func TestExternalBusy(t *testing.T) {
	calendar := &fakeCalendarClient{
		intervals: []calendarsync.BusyInterval{
			{Start: ts(11, 0), End: ts(12, 0)},
			{Start: ts(10, 0), End: ts(11, 0)},
		},
	}
	svc := NewService(&fakeBookingRepo{}, &fakeScheduleRepo{}, calendar, nopLogger{})

	got, err := svc.ExternalBusy(context.Background(), 10, ts(9, 0), ts(17, 0))
	require.NoError(t, err)

	// Примыкающие интервалы склеены
	require.Len(t, got, 1)
	assert.Equal(t, interval.New(ts(10, 0), ts(12, 0)), got[0])
}

func TestExternalBusyFailure(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeScheduleRepo{}, &fakeCalendarClient{err: errors.New("boom")}, nopLogger{})

	_, err := svc.ExternalBusy(context.Background(), 10, ts(9, 0), ts(17, 0))
	assert.ErrorIs(t, err, ErrBusyFetch)
}

func TestMergeExternal(t *testing.T) {
	busy := []interval.Interval{interval.New(ts(10, 0), ts(11, 0))}
	external := []interval.Interval{interval.New(ts(10, 30), ts(12, 0))}

	merged := MergeExternal(busy, external)
	require.Len(t, merged, 1)
	assert.Equal(t, interval.New(ts(10, 0), ts(12, 0)), merged[0])

	// Пустой external возвращает busy как есть
	assert.Equal(t, busy, MergeExternal(busy, nil))
}

func TestExternalIntervals(t *testing.T) {
	dto := []calendarsync.BusyInterval{
		{Start: ts(10, 0), End: ts(11, 0)},
		{Start: ts(13, 0), End: ts(14, 0)},
	}

	got := externalIntervals(10, dto)
	require.Len(t, got, 2)
	assert.Equal(t, interval.New(ts(10, 0), ts(11, 0)), got[0])
	assert.Equal(t, interval.New(ts(13, 0), ts(14, 0)), got[1])

	assert.Empty(t, externalIntervals(10, nil))
}
