package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBooking "github.com/salonhq/booking-engine/internal/usecase/create_booking"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *createBooking.Request) (*createBooking.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"providerId": 10,
	"eventTypeId": 7,
	"start": "2026-03-02T10:00:00Z",
	"attendee": {"name": "Mila Petrova", "email": "mila@example.com", "timezone": "Europe/Belgrade"}
}`

func doRequest(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandleCreated(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	h := NewHandler(&fakeUseCase{resp: &createBooking.Response{
		UID:         "bk-1",
		ProviderID:  10,
		EventTypeID: 7,
		Start:       start,
		End:         start.Add(30 * time.Minute),
		Status:      "accepted",
		CreatedAt:   start,
	}}, nopLogger{})

	rec := doRequest(h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bk-1", resp.UID)
	assert.Equal(t, "accepted", resp.Status)
	assert.Equal(t, "2026-03-02T10:00:00Z", resp.Start)
}

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"slot not available", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"provider not found", createBooking.ErrProviderNotFound, http.StatusNotFound},
		{"event type not found", createBooking.ErrEventTypeNotFound, http.StatusNotFound},
		{"outside working hours", createBooking.ErrOutsideWorkingHours, http.StatusBadRequest},
		{"notice violation", createBooking.ErrNoticeViolation, http.StatusBadRequest},
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"try again", createBooking.ErrTryAgain, http.StatusServiceUnavailable},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			rec := doRequest(h, validBody)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandleMalformedBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := doRequest(h, `{"providerId": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInvalidStart(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	rec := doRequest(h, `{"providerId": 10, "eventTypeId": 7, "start": "tomorrow", "attendee": {"name": "A", "email": "a@b.c"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
