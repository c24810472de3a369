package get_slots

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, maxSpanDays int) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.EventTypeID <= 0 {
		return fmt.Errorf("%w: eventTypeID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.From.Before(req.To) {
		return fmt.Errorf("%w: to must be after from", ErrInvalidRange)
	}

	maxSpan := time.Duration(maxSpanDays) * 24 * time.Hour
	if req.To.Sub(req.From) > maxSpan {
		return fmt.Errorf("%w: window exceeds %d days", ErrInvalidRange, maxSpanDays)
	}

	return nil
}
