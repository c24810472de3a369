package reschedule_booking

import (
	"context"
	"time"

	"github.com/salonhq/booking-engine/internal/domain"
	"github.com/salonhq/booking-engine/internal/service/availability"
	"github.com/salonhq/booking-engine/pkg/interval"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByUID(ctx context.Context, uid string) (*domain.Booking, error)
	UpdateSlot(ctx context.Context, id int64, start, end, effectiveStart, effectiveEnd time.Time) error
}

// ScheduleRepository интерфейс read-only хранилища правил доступности
type ScheduleRepository interface {
	GetScheduleByProvider(ctx context.Context, providerID int64) (*domain.Schedule, error)
	GetEventType(ctx context.Context, id int64) (*domain.EventType, error)
}

// AvailabilityService интерфейс сервиса слияния busy-интервалов
type AvailabilityService interface {
	MergedBusySet(ctx context.Context, providerID int64, from, to time.Time, opts availability.BusySetOptions) ([]interval.Interval, error)
	ExternalBusy(ctx context.Context, providerID int64, from, to time.Time) ([]interval.Interval, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
