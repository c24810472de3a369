package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/salonhq/booking-engine/internal/api/handlers"
	rescheduleBooking "github.com/salonhq/booking-engine/internal/usecase/reschedule_booking"
)

const (
	msgInvalidUID          = "некорректный идентификатор бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStart        = "некорректный старт слота, ожидается RFC3339"
	msgBookingNotFound     = "бронирование не найдено"
	msgNotReschedulable    = "бронирование в терминальном статусе нельзя перенести"
	msgSlotNotAvailable    = "целевой временной слот недоступен"
	msgOutsideWorkingHours = "слот выходит за рабочие часы провайдера"
	msgNoticeViolation     = "слишком поздно для переноса на этот слот"
	msgTryAgain            = "источники занятости временно недоступны, повторите запрос"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{uid}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	uid := mux.Vars(r)["uid"]
	if uid == "" {
		handlers.RespondBadRequest(w, msgInvalidUID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{uid}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(uid)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{uid}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{uid}/reschedule - Not found: uid=%s", uid)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrBookingNotReschedulable):
			h.logger.Warn("PATCH /bookings/{uid}/reschedule - Not reschedulable: uid=%s", uid)
			handlers.RespondError(w, http.StatusConflict, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{uid}/reschedule - Slot not available: uid=%s, start=%s", uid, req.Start)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, rescheduleBooking.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /bookings/{uid}/reschedule - Outside working hours: uid=%s, start=%s", uid, req.Start)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, rescheduleBooking.ErrNoticeViolation):
			h.logger.Warn("PATCH /bookings/{uid}/reschedule - Notice violation: uid=%s, start=%s", uid, req.Start)
			handlers.RespondBadRequest(w, msgNoticeViolation)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{uid}/reschedule - Invalid input: uid=%s, error=%v", uid, err)
			handlers.RespondBadRequest(w, msgInvalidStart)

		case errors.Is(err, rescheduleBooking.ErrTryAgain):
			h.logger.Warn("PATCH /bookings/{uid}/reschedule - Busy sources unavailable: uid=%s, error=%v", uid, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTryAgain)

		default:
			h.logger.Error("PATCH /bookings/{uid}/reschedule - Failed: uid=%s, error=%v", uid, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{uid}/reschedule - Booking rescheduled: uid=%s, start=%s", uid, req.Start)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
