package get_booking

import (
	"time"

	"github.com/salonhq/booking-engine/internal/domain"
)

// AttendeeResponse данные клиента в HTTP ответе
type AttendeeResponse struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Timezone string  `json:"timezone,omitempty"`
	Locale   string  `json:"locale,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	UID                string           `json:"uid"`
	ProviderID         int64            `json:"providerId"`
	EventTypeID        int64            `json:"eventTypeId"`
	Start              string           `json:"start"`
	End                string           `json:"end"`
	Status             string           `json:"status"`
	Attendee           AttendeeResponse `json:"attendee"`
	CancellationReason *string          `json:"cancellationReason,omitempty"`
	CancelledAt        *string          `json:"cancelledAt,omitempty"`
	CreatedAt          string           `json:"createdAt"`
	UpdatedAt          string           `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		UID:         b.UID,
		ProviderID:  b.ProviderID,
		EventTypeID: b.EventTypeID,
		Start:       b.Start.Format(time.RFC3339),
		End:         b.End.Format(time.RFC3339),
		Status:      string(b.Status),
		Attendee: AttendeeResponse{
			Name:     b.Attendee.Name,
			Email:    b.Attendee.Email,
			Phone:    b.Attendee.Phone,
			Timezone: b.Attendee.Timezone,
			Locale:   b.Attendee.Locale,
		},
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}
