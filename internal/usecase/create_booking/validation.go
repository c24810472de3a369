package create_booking

import (
	"fmt"
	"strings"

	"github.com/salonhq/booking-engine/internal/domain"
	"github.com/salonhq/booking-engine/pkg/localtime"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.EventTypeID <= 0 {
		return fmt.Errorf("%w: eventTypeID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	return validateAttendee(&req.Attendee)
}

// validateAttendee валидирует данные клиента
func validateAttendee(a *AttendeeInput) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: attendee name is required", ErrInvalidInput)
	}
	if len(a.Name) > domain.MaxAttendeeNameLength {
		return fmt.Errorf("%w: attendee name is too long", ErrInvalidInput)
	}

	if !strings.Contains(a.Email, "@") {
		return fmt.Errorf("%w: attendee email is invalid", ErrInvalidInput)
	}

	if a.Timezone != "" {
		if _, err := localtime.LoadLocation(a.Timezone); err != nil {
			return fmt.Errorf("%w: attendee timezone is invalid: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
