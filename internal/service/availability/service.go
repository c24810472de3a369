// Package availability собирает нормализованный busy-набор провайдера:
// активные бронирования (их эффективные интервалы с буферами), включённые
// date overrides и интервалы внешнего календаря сливаются в минимальное
// упорядоченное множество непересекающихся UTC интервалов.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/salonhq/booking-engine/internal/domain"
	"github.com/salonhq/booking-engine/internal/integrations/calendarsync"
	"github.com/salonhq/booking-engine/pkg/interval"
)

// Service сервис слияния busy-интервалов
type Service struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	calendarClient CalendarSyncClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса занятости
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	calendarClient CalendarSyncClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		scheduleRepo:   scheduleRepo,
		calendarClient: calendarClient,
		logger:         logger,
	}
}

// BusySetOptions параметры сборки busy-набора
type BusySetOptions struct {
	// ExcludeBookingID исключает бронирование из набора
	// (сценарий reschedule: переносимая запись не блокирует сама себя)
	ExcludeBookingID *int64
	// SkipExternal пропускает внешний календарь. Используется внутри
	// транзакции записи, где внешние интервалы уже были получены до её
	// открытия - HTTP вызовов под блокировками не делаем.
	SkipExternal bool
}

// MergedBusySet возвращает упорядоченный непересекающийся busy-набор
// провайдера в UTC окне [from, to). Детерминирован: одинаковые входы дают
// одинаковый результат.
func (s *Service) MergedBusySet(ctx context.Context, providerID int64, from, to time.Time, opts BusySetOptions) ([]interval.Interval, error) {
	intervals := make([]interval.Interval, 0)

	bookings, err := s.bookingRepo.GetActiveOverlapping(ctx, providerID, from, to, opts.ExcludeBookingID)
	if err != nil {
		s.logger.Error("MergedBusySet: failed to get bookings for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: bookings: %v", ErrBusyFetch, err)
	}
	for _, b := range bookings {
		intervals = append(intervals, b.EffectiveInterval())
	}

	overrides, err := s.scheduleRepo.GetOverridesInRange(ctx, providerID, from, to)
	if err != nil {
		s.logger.Error("MergedBusySet: failed to get overrides for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: overrides: %v", ErrBusyFetch, err)
	}
	for _, o := range overrides {
		intervals = append(intervals, o.Interval())
	}

	if !opts.SkipExternal {
		external, err := s.calendarClient.GetBusyIntervalsWithRetry(ctx, providerID, from, to)
		if err != nil {
			s.logger.Error("MergedBusySet: external calendar unavailable for provider=%d: %v", providerID, err)
			return nil, fmt.Errorf("%w: external calendar: %v", ErrBusyFetch, err)
		}
		intervals = append(intervals, externalIntervals(providerID, external)...)
	}

	merged := interval.Merge(intervals)

	s.logger.Info("MergedBusySet: provider=%d, window=[%s, %s): %d bookings, %d overrides -> %d busy intervals",
		providerID, from.Format(time.RFC3339), to.Format(time.RFC3339), len(bookings), len(overrides), len(merged))

	return merged, nil
}

// ExternalBusy возвращает интервалы внешнего календаря в UTC окне [from, to).
// Пишущие use cases вызывают его до открытия транзакции и передают результат
// через MergeExternal - HTTP вызовов под блокировками строк не делаем.
func (s *Service) ExternalBusy(ctx context.Context, providerID int64, from, to time.Time) ([]interval.Interval, error) {
	external, err := s.calendarClient.GetBusyIntervalsWithRetry(ctx, providerID, from, to)
	if err != nil {
		s.logger.Error("ExternalBusy: external calendar unavailable for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: external calendar: %v", ErrBusyFetch, err)
	}

	return interval.Merge(externalIntervals(providerID, external)), nil
}

// externalIntervals конвертирует DTO внешнего календаря в доменные
// busy-интервалы провайдера
func externalIntervals(providerID int64, busy []calendarsync.BusyInterval) []interval.Interval {
	intervals := make([]interval.Interval, 0, len(busy))
	for _, b := range busy {
		ext := domain.ExternalBusyInterval{
			ProviderID: providerID,
			Start:      b.Start,
			End:        b.End,
		}
		intervals = append(intervals, ext.Interval())
	}
	return intervals
}

// MergeExternal вливает заранее полученные внешние интервалы в busy-набор
func MergeExternal(busy, external []interval.Interval) []interval.Interval {
	if len(external) == 0 {
		return busy
	}
	return interval.Merge(append(append(make([]interval.Interval, 0, len(busy)+len(external)), busy...), external...))
}
