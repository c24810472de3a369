package get_provider_bookings

import (
	"context"

	"github.com/salonhq/booking-engine/internal/domain"
)

type BookingsService interface {
	GetProviderBookings(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
