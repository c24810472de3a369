package get_provider_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/salonhq/booking-engine/internal/domain"
	"github.com/salonhq/booking-engine/pkg/ptr"
)

// BookingItem элемент списка бронирований провайдера
type BookingItem struct {
	UID           string  `json:"uid"`
	EventTypeID   int64   `json:"eventTypeId"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	Status        string  `json:"status"`
	AttendeeName  string  `json:"attendeeName"`
	AttendeeEmail string  `json:"attendeeEmail"`
	AttendeePhone *string `json:"attendeePhone,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// BookingsResponse HTTP response model
type BookingsResponse struct {
	ProviderID int64         `json:"providerId"`
	Bookings   []BookingItem `json:"bookings"`
}

// ToFilter формирует фильтр из query параметров.
// Окно задаётся либо date (один день UTC), либо парой from/to.
func ToFilter(providerID int64, dateStr, fromStr, toStr, statusStr, includeInactiveStr string) (domain.ProviderBookingsFilter, error) {
	filter := domain.ProviderBookingsFilter{ProviderID: providerID}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return filter, fmt.Errorf("invalid date: %w", err)
		}
		from := date.UTC()
		filter.From = ptr.Ptr(from)
		filter.To = ptr.Ptr(from.AddDate(0, 0, 1))
	} else if fromStr != "" || toStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return filter, fmt.Errorf("invalid from: %w", err)
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return filter, fmt.Errorf("invalid to: %w", err)
		}
		filter.From = ptr.Ptr(from.UTC())
		filter.To = ptr.Ptr(to.UTC())
	}

	if statusStr != "" {
		status := domain.BookingStatus(statusStr)
		if !status.IsValid() {
			return filter, fmt.Errorf("invalid status: %q", statusStr)
		}
		filter.Status = ptr.Ptr(status)
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return filter, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		filter.IncludeInactive = includeInactive
	}

	return filter, nil
}

// FromDomain конвертирует доменные модели в HTTP response
func FromDomain(providerID int64, items []*domain.Booking) *BookingsResponse {
	bookings := make([]BookingItem, 0, len(items))
	for _, b := range items {
		bookings = append(bookings, BookingItem{
			UID:           b.UID,
			EventTypeID:   b.EventTypeID,
			Start:         b.Start.Format(time.RFC3339),
			End:           b.End.Format(time.RFC3339),
			Status:        string(b.Status),
			AttendeeName:  b.Attendee.Name,
			AttendeeEmail: b.Attendee.Email,
			AttendeePhone: b.Attendee.Phone,
			CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		})
	}

	return &BookingsResponse{
		ProviderID: providerID,
		Bookings:   bookings,
	}
}
