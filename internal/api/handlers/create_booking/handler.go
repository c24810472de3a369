package create_booking

import (
	"errors"
	"net/http"

	"github.com/salonhq/booking-engine/internal/api/handlers"
	createBooking "github.com/salonhq/booking-engine/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStart        = "некорректный старт слота, ожидается RFC3339"
	msgInvalidInput        = "некорректные данные бронирования"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgProviderNotFound    = "провайдер не найден"
	msgEventTypeNotFound   = "тип события не найден"
	msgOutsideWorkingHours = "слот выходит за рабочие часы провайдера"
	msgNoticeViolation     = "слишком поздно для бронирования этого слота"
	msgTryAgain            = "источники занятости временно недоступны, повторите запрос"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: provider_id=%d, start=%s", req.ProviderID, req.Start)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createBooking.ErrEventTypeNotFound):
			h.logger.Warn("POST /bookings - Event type not found: provider_id=%d, event_type_id=%d", req.ProviderID, req.EventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: provider_id=%d, start=%s", req.ProviderID, req.Start)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrNoticeViolation):
			h.logger.Warn("POST /bookings - Notice violation: provider_id=%d, start=%s", req.ProviderID, req.Start)
			handlers.RespondBadRequest(w, msgNoticeViolation)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrTryAgain):
			h.logger.Warn("POST /bookings - Busy sources unavailable: provider_id=%d, error=%v", req.ProviderID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTryAgain)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: provider_id=%d, event_type_id=%d, error=%v",
				req.ProviderID, req.EventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: uid=%s, provider_id=%d, status=%s",
		result.UID, result.ProviderID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
