package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonhq/booking-engine/internal/api/handlers"
	"github.com/salonhq/booking-engine/internal/service/bookings"
)

const (
	msgInvalidUID      = "некорректный идентификатор бронирования"
	msgBookingNotFound = "бронирование не найдено"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{uid}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]
	if uid == "" {
		handlers.RespondBadRequest(w, msgInvalidUID)
		return
	}

	booking, err := h.service.GetByUID(r.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{uid} - Not found: uid=%s", uid)
			handlers.RespondNotFound(w, msgBookingNotFound)
		default:
			h.logger.Error("GET /bookings/{uid} - Failed: uid=%s, error=%v", uid, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(booking))
}
