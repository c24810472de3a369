package create_booking

import (
	"fmt"
	"time"

	createBooking "github.com/salonhq/booking-engine/internal/usecase/create_booking"
)

// AttendeeRequest данные клиента в HTTP запросе
type AttendeeRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
	Timezone string  `json:"timezone"`
	Locale   string  `json:"locale,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ProviderID  int64           `json:"providerId"`
	EventTypeID int64           `json:"eventTypeId"`
	Start       string          `json:"start"` // RFC3339
	Attendee    AttendeeRequest `json:"attendee"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	UID         string `json:"uid"`
	ProviderID  int64  `json:"providerId"`
	EventTypeID int64  `json:"eventTypeId"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}

	return &createBooking.Request{
		ProviderID:  r.ProviderID,
		EventTypeID: r.EventTypeID,
		Start:       start,
		Attendee: createBooking.AttendeeInput{
			Name:     r.Attendee.Name,
			Email:    r.Attendee.Email,
			Phone:    r.Attendee.Phone,
			Timezone: r.Attendee.Timezone,
			Locale:   r.Attendee.Locale,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		UID:         resp.UID,
		ProviderID:  resp.ProviderID,
		EventTypeID: resp.EventTypeID,
		Start:       resp.Start.Format(time.RFC3339),
		End:         resp.End.Format(time.RFC3339),
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
