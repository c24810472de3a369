package reschedule_booking

import (
	"fmt"
	"time"

	rescheduleBooking "github.com/salonhq/booking-engine/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Start string `json:"start"` // RFC3339
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	UID         string `json:"uid"`
	ProviderID  int64  `json:"providerId"`
	EventTypeID int64  `json:"eventTypeId"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Status      string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(uid string) (*rescheduleBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}

	return &rescheduleBooking.Request{
		UID:   uid,
		Start: start,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		UID:         resp.UID,
		ProviderID:  resp.ProviderID,
		EventTypeID: resp.EventTypeID,
		Start:       resp.Start.Format(time.RFC3339),
		End:         resp.End.Format(time.RFC3339),
		Status:      resp.Status,
	}
}
