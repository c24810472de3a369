package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salonhq/booking-engine/internal/domain"
	bookingRepo "github.com/salonhq/booking-engine/internal/infra/storage/booking"
	scheduleRepo "github.com/salonhq/booking-engine/internal/infra/storage/schedule"
	"github.com/salonhq/booking-engine/internal/service/availability"
	"github.com/salonhq/booking-engine/pkg/interval"
	"github.com/salonhq/booking-engine/pkg/localtime"
	"github.com/salonhq/booking-engine/pkg/txmanager"
)

// UseCase use case создания бронирования. Все проверки доступности и
// вставка выполняются в одной serializable транзакции; exclusion constraint
// в БД страхует от гонок, которые транзакция не перехватила.
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

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: provider=%d, eventType=%d, start=%s",
		req.ProviderID, req.EventTypeID, req.Start.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Расписание и тип события читаются до транзакции: это
	// slowly-changing данные, их согласованность гонками не ломается
	schedule, eventType, err := uc.loadScheduleAndEventType(ctx, req.ProviderID, req.EventTypeID)
	if err != nil {
		return nil, err
	}

	loc, err := localtime.LoadLocation(schedule.Timezone)
	if err != nil {
		uc.logger.Error("CreateBooking: invalid timezone %q for provider=%d: %v", schedule.Timezone, req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid schedule timezone: %v", ErrInternal, err)
	}

	start := req.Start.UTC()
	window := interval.New(start, start.Add(eventType.Duration()))
	effective := window.Expand(eventType.BufferBefore(), eventType.BufferAfter())

	// 3. Minimum notice от инжектированного "сейчас"
	now := uc.timeProvider.Now()
	if start.Before(now.Add(eventType.MinimumNotice())) {
		uc.logger.Warn("CreateBooking: notice violation: start=%s, now=%s, notice=%s",
			start.Format(time.RFC3339), now.Format(time.RFC3339), eventType.MinimumNotice())
		return nil, ErrNoticeViolation
	}

	// 4. Рабочие часы: окно бронирования (без буферов) должно целиком
	// помещаться в рабочие интервалы
	working, err := availability.WorkingIntervals(schedule, loc, window)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to expand rules for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to expand rules: %v", ErrInternal, err)
	}
	if !availability.ContainsWindow(working, window) {
		return nil, ErrOutsideWorkingHours
	}

	// 5. Внешний календарь опрашивается до открытия транзакции:
	// HTTP под блокировками строк не делаем
	external, err := uc.availability.ExternalBusy(ctx, req.ProviderID, effective.Start, effective.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTryAgain, err)
	}

	// 6. Serializable транзакция: проверка занятости + вставка
	var created *domain.Booking
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		busy, err := uc.availability.MergedBusySet(txCtx, req.ProviderID, effective.Start, effective.End,
			availability.BusySetOptions{SkipExternal: true})
		if err != nil {
			return err
		}
		busy = availability.MergeExternal(busy, external)

		for _, b := range busy {
			if effective.Overlaps(b) {
				return ErrSlotNotAvailable
			}
		}

		booking := &domain.Booking{
			UID:            uuid.NewString(),
			ProviderID:     req.ProviderID,
			EventTypeID:    req.EventTypeID,
			Start:          window.Start,
			End:            window.End,
			EffectiveStart: effective.Start,
			EffectiveEnd:   effective.End,
			Status:         eventType.InitialStatus(),
			Attendee: domain.Attendee{
				Name:     req.Attendee.Name,
				Email:    req.Attendee.Email,
				Phone:    req.Attendee.Phone,
				Timezone: req.Attendee.Timezone,
				Locale:   req.Attendee.Locale,
			},
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		return err
	})
	if txErr != nil {
		return nil, uc.mapTxError(txErr, req)
	}

	uc.logger.Info("CreateBooking: created uid=%s, provider=%d, window=[%s, %s), status=%s",
		created.UID, created.ProviderID,
		created.Start.Format(time.RFC3339), created.End.Format(time.RFC3339), created.Status)

	return &Response{
		UID:         created.UID,
		ProviderID:  created.ProviderID,
		EventTypeID: created.EventTypeID,
		Start:       created.Start,
		End:         created.End,
		Status:      string(created.Status),
		CreatedAt:   created.CreatedAt,
	}, nil
}

// loadScheduleAndEventType читает расписание и тип события, проверяя
// принадлежность типа события провайдеру
func (uc *UseCase) loadScheduleAndEventType(ctx context.Context, providerID, eventTypeID int64) (*domain.Schedule, *domain.EventType, error) {
	schedule, err := uc.scheduleRepo.GetScheduleByProvider(ctx, providerID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%d not found", providerID)
			return nil, nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get schedule for provider=%d: %v", providerID, err)
		return nil, nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	eventType, err := uc.scheduleRepo.GetEventType(ctx, eventTypeID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrEventTypeNotFound) {
			uc.logger.Warn("CreateBooking: event type id=%d not found", eventTypeID)
			return nil, nil, ErrEventTypeNotFound
		}
		uc.logger.Error("CreateBooking: failed to get event type id=%d: %v", eventTypeID, err)
		return nil, nil, fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
	}
	if eventType.ProviderID != providerID {
		uc.logger.Warn("CreateBooking: event type id=%d does not belong to provider=%d", eventTypeID, providerID)
		return nil, nil, ErrEventTypeNotFound
	}

	return schedule, eventType, nil
}

// mapTxError переводит ошибки транзакции в ошибки use case.
// Проигравший гонку получает ErrSlotNotAvailable независимо от того, кто
// её обнаружил: проверка занятости, exclusion constraint или serializable
// конфликт после исчерпания ретраев.
func (uc *UseCase) mapTxError(err error, req *Request) error {
	switch {
	case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, bookingRepo.ErrSlotTaken):
		uc.logger.Warn("CreateBooking: slot taken: provider=%d, start=%s",
			req.ProviderID, req.Start.Format(time.RFC3339))
		return ErrSlotNotAvailable
	case txmanager.IsSerializationFailure(err):
		uc.logger.Warn("CreateBooking: serialization conflict after retries: provider=%d, start=%s",
			req.ProviderID, req.Start.Format(time.RFC3339))
		return ErrSlotNotAvailable
	case errors.Is(err, availability.ErrBusyFetch):
		return fmt.Errorf("%w: %v", ErrTryAgain, err)
	default:
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
