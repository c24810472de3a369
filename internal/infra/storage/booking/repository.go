package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salonhq/booking-engine/internal/domain"
	"github.com/salonhq/booking-engine/pkg/dbmetrics"
	"github.com/salonhq/booking-engine/pkg/psqlbuilder"
)

// Код SQLSTATE нарушения exclusion constraint (bookings_no_overlap)
const pqExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"uid",
	"provider_id",
	"event_type_id",
	"start_at",
	"end_at",
	"effective_start",
	"effective_end",
	"status",
	"attendee_name",
	"attendee_email",
	"attendee_phone",
	"attendee_timezone",
	"attendee_locale",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
//
// Exclusion constraint на (provider_id, effective interval) для активных
// статусов - последний рубеж против двойного бронирования: даже если
// проверка пересечений в usecase пропустила гонку, вставка завершится
// ErrSlotTaken, а не второй записью на то же кресло.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"uid",
			"provider_id",
			"event_type_id",
			"start_at",
			"end_at",
			"effective_start",
			"effective_end",
			"status",
			"attendee_name",
			"attendee_email",
			"attendee_phone",
			"attendee_timezone",
			"attendee_locale",
		).
		Values(
			booking.UID,
			booking.ProviderID,
			booking.EventTypeID,
			booking.Start,
			booking.End,
			booking.EffectiveStart,
			booking.EffectiveEnd,
			booking.Status,
			booking.Attendee.Name,
			booking.Attendee.Email,
			booking.Attendee.Phone,
			booking.Attendee.Timezone,
			booking.Attendee.Locale,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByUID получает бронирование по внешнему идентификатору.
// Внутри транзакции строка блокируется (FOR UPDATE) - используется
// переходами статусов и reschedule.
func (r *Repository) GetByUID(ctx context.Context, uid string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"uid": uid})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByUID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetActiveOverlapping получает активные (pending/accepted) бронирования
// провайдера, чьи эффективные интервалы пересекаются с [from, to).
// Опционально исключает одно бронирование (сценарий reschedule).
// Внутри транзакции строки блокируются FOR UPDATE.
func (r *Repository) GetActiveOverlapping(ctx context.Context, providerID int64, from, to time.Time, excludeID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		// Пересечение полуоткрытых интервалов: строгие неравенства,
		// касание границ пересечением не считается
		Where(squirrel.Lt{"effective_start": to}).
		Where(squirrel.Gt{"effective_end": from}).
		OrderBy("effective_start ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByProviderWithFilter получает бронирования провайдера с фильтрацией
// по окну, статусу и включению неактивных. Используется дашбордом провайдера.
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": filter.ProviderID}).
		OrderBy("start_at ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.TerminalStatuses))
		for i, s := range domain.TerminalStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// Cancel отменяет бронирование с опциональной причиной
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Cancel", query, args)
}

// UpdateSlot переносит бронирование на новый интервал in place.
// Вызывается только из reschedule-транзакции после проверки занятости;
// exclusion constraint отклонит перенос, проскочивший мимо проверки.
func (r *Repository) UpdateSlot(ctx context.Context, id int64, start, end, effectiveStart, effectiveEnd time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_at", start).
		Set("end_at", end).
		Set("effective_start", effectiveStart).
		Set("effective_end", effectiveEnd).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - build update query: %v", ErrBuildQuery, err)
	}

	if err := r.execExpectingRow(ctx, executor, "UpdateSlot", query, args); err != nil {
		if isExclusionViolation(err) {
			return ErrSlotTaken
		}
		return err
	}

	return nil
}

// ExpirePendingCreatedBefore отменяет pending бронирования, созданные
// раньше cutoff. Возвращает список затронутых uid. Используется фоновой
// задачей истечения неподтверждённых бронирований.
func (r *Repository) ExpirePendingCreatedBefore(ctx context.Context, cutoff time.Time, reason string) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Lt{"created_at": cutoff}).
		Suffix("RETURNING uid").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ExpirePendingCreatedBefore - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExpirePendingCreatedBefore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	uids := make([]string, 0)
	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return nil, fmt.Errorf("%w: ExpirePendingCreatedBefore - scan uid: %v", ErrScanRow, err)
		}
		uids = append(uids, uid)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ExpirePendingCreatedBefore - rows error: %v", ErrScanRow, err)
	}

	return uids, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return err
		}
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UID,
		&booking.ProviderID,
		&booking.EventTypeID,
		&booking.Start,
		&booking.End,
		&booking.EffectiveStart,
		&booking.EffectiveEnd,
		&booking.Status,
		&booking.Attendee.Name,
		&booking.Attendee.Email,
		&booking.Attendee.Phone,
		&booking.Attendee.Timezone,
		&booking.Attendee.Locale,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation
}
