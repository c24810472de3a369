package get_slots

import (
	"time"

	getSlots "github.com/salonhq/booking-engine/internal/usecase/get_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	ProviderID  int64    `json:"providerId"`
	EventTypeID int64    `json:"eventTypeId"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Slots       []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.Format(time.RFC3339))
	}

	return &SlotsResponse{
		ProviderID:  resp.ProviderID,
		EventTypeID: resp.EventTypeID,
		From:        resp.From.Format(time.RFC3339),
		To:          resp.To.Format(time.RFC3339),
		Slots:       slots,
	}
}
