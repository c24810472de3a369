package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonhq/booking-engine/internal/api/handlers"
	"github.com/salonhq/booking-engine/internal/service/bookings"
)

const (
	msgInvalidUID        = "некорректный идентификатор бронирования"
	msgBookingNotFound   = "бронирование не найдено"
	msgAlreadyTerminal   = "бронирование уже находится в терминальном статусе"
	msgInvalidTransition = "подтвердить можно только бронирование в статусе pending"
)

// StatusResponse HTTP response model
type StatusResponse struct {
	UID    string `json:"uid"`
	Status string `json:"status"`
}

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

// Handle PATCH /api/v1/bookings/{uid}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]
	if uid == "" {
		handlers.RespondBadRequest(w, msgInvalidUID)
		return
	}

	booking, err := h.service.Confirm(r.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{uid}/confirm - Not found: uid=%s", uid)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAlreadyTerminal):
			h.logger.Warn("PATCH /bookings/{uid}/confirm - Already terminal: uid=%s", uid)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyTerminal)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{uid}/confirm - Invalid transition: uid=%s", uid)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{uid}/confirm - Failed: uid=%s, error=%v", uid, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{uid}/confirm - Booking confirmed: uid=%s", uid)
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{UID: booking.UID, Status: string(booking.Status)})
}
