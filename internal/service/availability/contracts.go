package availability

import (
	"context"
	"time"

	"github.com/salonhq/booking-engine/internal/domain"
	"github.com/salonhq/booking-engine/internal/integrations/calendarsync"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveOverlapping(ctx context.Context, providerID int64, from, to time.Time, excludeID *int64) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс read-only хранилища правил доступности
type ScheduleRepository interface {
	GetOverridesInRange(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.DateOverride, error)
}

// CalendarSyncClient интерфейс клиента внешнего календаря
type CalendarSyncClient interface {
	GetBusyIntervalsWithRetry(ctx context.Context, providerID int64, from, to time.Time) ([]calendarsync.BusyInterval, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
