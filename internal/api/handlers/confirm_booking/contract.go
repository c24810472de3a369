package confirm_booking

import (
	"context"

	"github.com/salonhq/booking-engine/internal/domain"
)

type BookingsService interface {
	Confirm(ctx context.Context, uid string) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
