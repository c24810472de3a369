package get_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/salonhq/booking-engine/internal/api/handlers"
	getSlots "github.com/salonhq/booking-engine/internal/usecase/get_slots"
)

const (
	msgInvalidProviderID  = "некорректный ID провайдера"
	msgInvalidEventTypeID = "некорректный ID типа события"
	msgInvalidTimeRange   = "некорректное окно запроса, ожидаются from и to в формате RFC3339"
	msgProviderNotFound   = "провайдер не найден"
	msgEventTypeNotFound  = "тип события не найден"
	msgInvalidTimezone    = "расписание провайдера содержит некорректную таймзону"
	msgTryAgain           = "источники занятости временно недоступны, повторите запрос"
)

type Handler struct {
	useCase GetSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/event-types/{eventTypeId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil || providerID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	eventTypeID, err := strconv.ParseInt(vars["eventTypeId"], 10, 64)
	if err != nil || eventTypeID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidEventTypeID)
		return
	}

	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTimeRange)
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTimeRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		ProviderID:  providerID,
		EventTypeID: eventTypeID,
		From:        from,
		To:          to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrProviderNotFound):
			h.logger.Warn("GET /slots - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getSlots.ErrEventTypeNotFound):
			h.logger.Warn("GET /slots - Event type not found: provider_id=%d, event_type_id=%d", providerID, eventTypeID)
			handlers.RespondNotFound(w, msgEventTypeNotFound)

		case errors.Is(err, getSlots.ErrInvalidRange), errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid request: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, getSlots.ErrInvalidTimezone):
			h.logger.Error("GET /slots - Invalid timezone: provider_id=%d, error=%v", providerID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidTimezone)

		case errors.Is(err, getSlots.ErrTryAgain):
			h.logger.Warn("GET /slots - Busy sources unavailable: provider_id=%d, error=%v", providerID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgTryAgain)

		default:
			h.logger.Error("GET /slots - Failed: provider_id=%d, event_type_id=%d, error=%v", providerID, eventTypeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
