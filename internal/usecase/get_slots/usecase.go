package get_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	scheduleRepo "github.com/salonhq/booking-engine/internal/infra/storage/schedule"
	"github.com/salonhq/booking-engine/internal/service/availability"
	"github.com/salonhq/booking-engine/pkg/interval"
	"github.com/salonhq/booking-engine/pkg/localtime"
)

// UseCase use case получения доступных слотов. Чистый read path: все чтения
// выполняются в одной read-only транзакции (согласованный снимок расписания
// и занятости), блокировок нет, результат носит рекомендательный характер -
// финальную проверку делает транзакция создания бронирования.
type UseCase struct {
	scheduleRepo ScheduleRepository
	availability AvailabilityService
	txManager    TransactionManager
	maxSpanDays  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	availabilitySvc AvailabilityService,
	txManager TransactionManager,
	maxSpanDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		availability: availabilitySvc,
		txManager:    txManager,
		maxSpanDays:  maxSpanDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Детерминирован: повторный запрос без промежуточных записей возвращает
// идентичный список.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlots: provider=%d, eventType=%d, window=[%s, %s)",
		req.ProviderID, req.EventTypeID, req.From.Format(time.RFC3339), req.To.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.maxSpanDays); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var resp *Response
	txErr := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		// 2. Получаем расписание провайдера с правилами
		schedule, err := uc.scheduleRepo.GetScheduleByProvider(txCtx, req.ProviderID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("GetSlots: provider id=%d not found", req.ProviderID)
				return ErrProviderNotFound
			}
			uc.logger.Error("GetSlots: failed to get schedule for provider=%d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 3. Получаем тип события и проверяем принадлежность провайдеру
		eventType, err := uc.scheduleRepo.GetEventType(txCtx, req.EventTypeID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrEventTypeNotFound) {
				uc.logger.Warn("GetSlots: event type id=%d not found", req.EventTypeID)
				return ErrEventTypeNotFound
			}
			uc.logger.Error("GetSlots: failed to get event type id=%d: %v", req.EventTypeID, err)
			return fmt.Errorf("%w: failed to get event type: %v", ErrInternal, err)
		}
		if eventType.ProviderID != req.ProviderID {
			uc.logger.Warn("GetSlots: event type id=%d does not belong to provider=%d", req.EventTypeID, req.ProviderID)
			return ErrEventTypeNotFound
		}

		// 4. Таймзона расписания
		loc, err := localtime.LoadLocation(schedule.Timezone)
		if err != nil {
			uc.logger.Error("GetSlots: invalid timezone %q for provider=%d: %v", schedule.Timezone, req.ProviderID, err)
			return fmt.Errorf("%w: %v", ErrInvalidTimezone, err)
		}

		window := interval.New(req.From.UTC(), req.To.UTC())

		// 5. Разворачиваем правила в рабочие UTC интервалы
		working, err := availability.WorkingIntervals(schedule, loc, window)
		if err != nil {
			uc.logger.Error("GetSlots: failed to expand rules for provider=%d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: failed to expand rules: %v", ErrInternal, err)
		}

		// 6. Busy-набор: бронирования + overrides + внешний календарь
		busy, err := uc.availability.MergedBusySet(txCtx, req.ProviderID, window.Start, window.End, availability.BusySetOptions{})
		if err != nil {
			if errors.Is(err, availability.ErrBusyFetch) {
				return fmt.Errorf("%w: %v", ErrTryAgain, err)
			}
			return fmt.Errorf("%w: failed to build busy set: %v", ErrInternal, err)
		}

		// 7. Свободные интервалы и старты слотов
		free := interval.Subtract(working, busy)
		earliest := now.Add(eventType.MinimumNotice())
		slots := collectSlots(slotSequence(free, busy, eventType, window, earliest))

		uc.logger.Info("GetSlots: provider=%d, eventType=%d: %d working intervals, %d busy, %d slots",
			req.ProviderID, req.EventTypeID, len(working), len(busy), len(slots))

		resp = &Response{
			ProviderID:  req.ProviderID,
			EventTypeID: req.EventTypeID,
			From:        req.From,
			To:          req.To,
			Slots:       slots,
		}
		return nil
	})
	if txErr != nil {
		return nil, uc.mapTxError(txErr)
	}

	return resp, nil
}

// mapTxError пропускает ошибки use case как есть, всё остальное
// (не открылась транзакция и т.п.) считается внутренней ошибкой
func (uc *UseCase) mapTxError(err error) error {
	switch {
	case errors.Is(err, ErrProviderNotFound),
		errors.Is(err, ErrEventTypeNotFound),
		errors.Is(err, ErrInvalidTimezone),
		errors.Is(err, ErrTryAgain),
		errors.Is(err, ErrInternal):
		return err
	default:
		uc.logger.Error("GetSlots: read transaction failed: %v", err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
