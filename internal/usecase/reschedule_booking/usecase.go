package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhq/booking-engine/internal/domain"
	bookingRepo "github.com/salonhq/booking-engine/internal/infra/storage/booking"
	scheduleRepo "github.com/salonhq/booking-engine/internal/infra/storage/schedule"
	"github.com/salonhq/booking-engine/internal/service/availability"
	"github.com/salonhq/booking-engine/pkg/interval"
	"github.com/salonhq/booking-engine/pkg/localtime"
	"github.com/salonhq/booking-engine/pkg/txmanager"
)

// UseCase use case переноса бронирования. Перенос выполняется in place:
// uid, статус и данные клиента сохраняются, меняется только слот.
// При занятом целевом слоте исходное бронирование остаётся нетронутым.
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	availability AvailabilityService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	scheduleRepository ScheduleRepository,
	availabilitySvc AvailabilityService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepository,
		scheduleRepo: scheduleRepository,
		availability: availabilitySvc,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: uid=%s, start=%s", req.UID, req.Start.Format(time.RFC3339))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 1. Предварительное чтение без блокировки: провайдер и тип события
	// нужны до транзакции для расписания и внешнего календаря
	booking, err := uc.getBooking(ctx, req.UID)
	if err != nil {
		return nil, err
	}
	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: uid=%s is terminal (status=%s)", booking.UID, booking.Status)
		return nil, ErrBookingNotReschedulable
	}

	schedule, eventType, err := uc.loadScheduleAndEventType(ctx, booking)
	if err != nil {
		return nil, err
	}

	loc, err := localtime.LoadLocation(schedule.Timezone)
	if err != nil {
		uc.logger.Error("RescheduleBooking: invalid timezone %q for provider=%d: %v", schedule.Timezone, booking.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid schedule timezone: %v", ErrInternal, err)
	}

	start := req.Start.UTC()
	window := interval.New(start, start.Add(eventType.Duration()))
	effective := window.Expand(eventType.BufferBefore(), eventType.BufferAfter())

	// 2. Minimum notice для нового старта
	now := uc.timeProvider.Now()
	if start.Before(now.Add(eventType.MinimumNotice())) {
		uc.logger.Warn("RescheduleBooking: notice violation: uid=%s, start=%s, now=%s",
			booking.UID, start.Format(time.RFC3339), now.Format(time.RFC3339))
		return nil, ErrNoticeViolation
	}

	// 3. Рабочие часы
	working, err := availability.WorkingIntervals(schedule, loc, window)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to expand rules for provider=%d: %v", booking.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to expand rules: %v", ErrInternal, err)
	}
	if !availability.ContainsWindow(working, window) {
		return nil, ErrOutsideWorkingHours
	}

	// 4. Внешний календарь до открытия транзакции
	external, err := uc.availability.ExternalBusy(ctx, booking.ProviderID, effective.Start, effective.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTryAgain, err)
	}

	// 5. Serializable транзакция: перечитываем с блокировкой, проверяем
	// занятость без учёта самой переносимой записи и обновляем слот
	var updated *domain.Booking
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		locked, err := uc.bookingRepo.GetByUID(txCtx, req.UID)
		if err != nil {
			return err
		}
		if !locked.CanBeRescheduled() {
			return ErrBookingNotReschedulable
		}

		busy, err := uc.availability.MergedBusySet(txCtx, locked.ProviderID, effective.Start, effective.End,
			availability.BusySetOptions{ExcludeBookingID: &locked.ID, SkipExternal: true})
		if err != nil {
			return err
		}
		busy = availability.MergeExternal(busy, external)

		for _, b := range busy {
			if effective.Overlaps(b) {
				return ErrSlotNotAvailable
			}
		}

		if err := uc.bookingRepo.UpdateSlot(txCtx, locked.ID, window.Start, window.End, effective.Start, effective.End); err != nil {
			return err
		}

		locked.Start = window.Start
		locked.End = window.End
		locked.EffectiveStart = effective.Start
		locked.EffectiveEnd = effective.End
		updated = locked
		return nil
	})
	if txErr != nil {
		return nil, uc.mapTxError(txErr, req)
	}

	uc.logger.Info("RescheduleBooking: uid=%s moved to [%s, %s)",
		updated.UID, updated.Start.Format(time.RFC3339), updated.End.Format(time.RFC3339))

	return &Response{
		UID:         updated.UID,
		ProviderID:  updated.ProviderID,
		EventTypeID: updated.EventTypeID,
		Start:       updated.Start,
		End:         updated.End,
		Status:      string(updated.Status),
	}, nil
}

func validateRequest(req *Request) error {
	if req.UID == "" {
		return fmt.Errorf("%w: uid is required", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}
	return nil
}

func (uc *UseCase) getBooking(ctx context.Context, uid string) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: uid=%s not found", uid)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking uid=%s: %v", uid, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

func (uc *UseCase) loadScheduleAndEventType(ctx context.Context, booking *domain.Booking) (*domain.Schedule, *domain.EventType, error) {
	schedule, err := uc.scheduleRepo.GetScheduleByProvider(ctx, booking.ProviderID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("RescheduleBooking: schedule missing for provider=%d (uid=%s)", booking.ProviderID, booking.UID)
			return nil, nil, fmt.Errorf("%w: schedule missing: %v", ErrInternal, err)
		}
		uc.logger.Error("RescheduleBooking: failed to get schedule for provider=%d: %v", booking.ProviderID, err)
		return nil, nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	eventType, err := uc.scheduleRepo.GetEventType(ctx, booking.EventTypeID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get event type id=%d: %v", booking.EventTypeID, err)
		return nil, nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}

	return schedule, eventType, nil
}

// mapTxError переводит ошибки транзакции в ошибки use case
func (uc *UseCase) mapTxError(err error, req *Request) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, bookingRepo.ErrSlotTaken):
		uc.logger.Warn("RescheduleBooking: target slot taken: uid=%s, start=%s",
			req.UID, req.Start.Format(time.RFC3339))
		return ErrSlotNotAvailable
	case errors.Is(err, ErrBookingNotReschedulable):
		return ErrBookingNotReschedulable
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	case txmanager.IsSerializationFailure(err):
		uc.logger.Warn("RescheduleBooking: serialization conflict after retries: uid=%s", req.UID)
		return ErrSlotNotAvailable
	case errors.Is(err, availability.ErrBusyFetch):
		return fmt.Errorf("%w: %v", ErrTryAgain, err)
	default:
		uc.logger.Error("RescheduleBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
