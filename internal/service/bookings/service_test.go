package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/booking-engine/internal/domain"
	bookingRepo "github.com/salonhq/booking-engine/internal/infra/storage/booking"
)

type fakeBookingRepo struct {
	byUID map[string]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{byUID: make(map[string]*domain.Booking)}
	for _, b := range bookings {
		repo.byUID[b.UID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByUID(_ context.Context, uid string) (*domain.Booking, error) {
	b, ok := f.byUID[uid]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.byUID {
		if b.ProviderID == filter.ProviderID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	for _, b := range f.byUID {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason *string) error {
	for _, b := range f.byUID {
		if b.ID == id {
			b.Status = domain.StatusCancelled
			b.CancellationReason = reason
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func booking(id int64, uid string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: id, UID: uid, ProviderID: 10, Status: status}
}

func newTestService(repo *fakeBookingRepo) *Service {
	return NewService(repo, fakeTxManager{}, nopLogger{})
}

func TestConfirmPending(t *testing.T) {
	repo := newFakeBookingRepo(booking(1, "bk-1", domain.StatusPending))
	svc := newTestService(repo)

	result, err := svc.Confirm(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, result.Status)
	assert.Equal(t, domain.StatusAccepted, repo.byUID["bk-1"].Status)
}

func TestDeclinePending(t *testing.T) {
	repo := newFakeBookingRepo(booking(1, "bk-1", domain.StatusPending))
	svc := newTestService(repo)

	result, err := svc.Decline(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, result.Status)
}

func TestConfirmAccepted(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(booking(1, "bk-1", domain.StatusAccepted)))

	_, err := svc.Confirm(context.Background(), "bk-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDeclineAccepted(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(booking(1, "bk-1", domain.StatusAccepted)))

	// Подтверждённое бронирование отклонить нельзя, только отменить
	_, err := svc.Decline(context.Background(), "bk-1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelWithReason(t *testing.T) {
	repo := newFakeBookingRepo(booking(1, "bk-1", domain.StatusAccepted))
	svc := newTestService(repo)

	reason := "client asked to cancel"
	result, err := svc.Cancel(context.Background(), "bk-1", &reason)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, result.Status)
	require.NotNil(t, result.CancellationReason)
	assert.Equal(t, reason, *result.CancellationReason)
}

func TestCancelPendingWithoutReason(t *testing.T) {
	repo := newFakeBookingRepo(booking(1, "bk-1", domain.StatusPending))
	svc := newTestService(repo)

	result, err := svc.Cancel(context.Background(), "bk-1", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, result.Status)
	assert.Nil(t, result.CancellationReason)
}

func TestCancelThenConfirm(t *testing.T) {
	repo := newFakeBookingRepo(booking(1, "bk-1", domain.StatusPending))
	svc := newTestService(repo)

	_, err := svc.Cancel(context.Background(), "bk-1", nil)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), "bk-1")
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestCancelTwice(t *testing.T) {
	repo := newFakeBookingRepo(booking(1, "bk-1", domain.StatusAccepted))
	svc := newTestService(repo)

	_, err := svc.Cancel(context.Background(), "bk-1", nil)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), "bk-1", nil)
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestTransitionsNotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())

	_, err := svc.Confirm(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.Cancel(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByUID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByUID(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(booking(1, "bk-1", domain.StatusPending)))

	result, err := svc.GetByUID(context.Background(), "bk-1")
	require.NoError(t, err)
	assert.Equal(t, "bk-1", result.UID)
}

func TestGetProviderBookings(t *testing.T) {
	repo := newFakeBookingRepo(
		booking(1, "bk-1", domain.StatusPending),
		booking(2, "bk-2", domain.StatusAccepted),
	)
	svc := newTestService(repo)

	result, err := svc.GetProviderBookings(context.Background(), domain.ProviderBookingsFilter{ProviderID: 10})
	require.NoError(t, err)
	assert.Len(t, result, 2)
}
