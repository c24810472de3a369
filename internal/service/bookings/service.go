// Package bookings реализует жизненный цикл бронирования после создания:
// чтение, подтверждение, отклонение и отмена. Переходы статусов проверяются
// внутри транзакции на заблокированной строке, поэтому параллельные
// изменения одного бронирования сериализуются.
package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhq/booking-engine/internal/domain"
	bookingRepo "github.com/salonhq/booking-engine/internal/infra/storage/booking"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса
func NewService(bookingRepository BookingRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepository,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByUID возвращает бронирование по внешнему идентификатору
func (s *Service) GetByUID(ctx context.Context, uid string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByUID: failed to get booking uid=%s: %v", uid, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return booking, nil
}

// GetProviderBookings возвращает бронирования провайдера по фильтру
func (s *Service) GetProviderBookings(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	result, err := s.bookingRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderBookings: failed for provider=%d: %v", filter.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return result, nil
}

// Confirm переводит pending бронирование в accepted
func (s *Service) Confirm(ctx context.Context, uid string) (*domain.Booking, error) {
	return s.transition(ctx, uid, domain.StatusAccepted, "Confirm")
}

// Decline переводит pending бронирование в rejected
func (s *Service) Decline(ctx context.Context, uid string) (*domain.Booking, error) {
	return s.transition(ctx, uid, domain.StatusRejected, "Decline")
}

// Cancel отменяет pending или accepted бронирование с опциональной причиной
func (s *Service) Cancel(ctx context.Context, uid string, reason *string) (*domain.Booking, error) {
	var result *domain.Booking

	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.lockedByUID(txCtx, uid)
		if err != nil {
			return err
		}

		if booking.Status.IsTerminal() {
			return ErrAlreadyTerminal
		}
		if !booking.CanBeCancelled() {
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.Cancel(txCtx, booking.ID, reason); err != nil {
			return err
		}

		booking.Status = domain.StatusCancelled
		booking.CancellationReason = reason
		result = booking
		return nil
	})
	if txErr != nil {
		return nil, s.mapError(txErr, uid, "Cancel")
	}

	s.logger.Info("Cancel: uid=%s cancelled", uid)
	return result, nil
}

// transition выполняет переход статуса на заблокированной строке.
// Отмена и терминальность проверяются раньше конкретного перехода, чтобы
// вызывающий мог отличить "уже закрыто" от "недопустимый переход".
func (s *Service) transition(ctx context.Context, uid string, target domain.BookingStatus, op string) (*domain.Booking, error) {
	var result *domain.Booking

	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.lockedByUID(txCtx, uid)
		if err != nil {
			return err
		}

		if booking.Status.IsTerminal() {
			return ErrAlreadyTerminal
		}
		if !booking.CanTransitionTo(target) {
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, target); err != nil {
			return err
		}

		booking.Status = target
		result = booking
		return nil
	})
	if txErr != nil {
		return nil, s.mapError(txErr, uid, op)
	}

	s.logger.Info("%s: uid=%s -> %s", op, uid, target)
	return result, nil
}

// lockedByUID читает бронирование внутри транзакции, строка блокируется
func (s *Service) lockedByUID(ctx context.Context, uid string) (*domain.Booking, error) {
	return s.bookingRepo.GetByUID(ctx, uid)
}

func (s *Service) mapError(err error, uid, op string) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: uid=%s not found", op, uid)
		return ErrBookingNotFound
	case errors.Is(err, ErrAlreadyTerminal):
		s.logger.Warn("%s: uid=%s is already terminal", op, uid)
		return ErrAlreadyTerminal
	case errors.Is(err, ErrInvalidTransition):
		s.logger.Warn("%s: uid=%s invalid transition", op, uid)
		return ErrInvalidTransition
	default:
		s.logger.Error("%s: uid=%s failed: %v", op, uid, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
