// Package schedule реализует read-only хранилище правил доступности:
// расписания провайдеров, date overrides и типы событий. Движок никогда
// не пишет через этот репозиторий - правила управляются настройками
// провайдера вне этого сервиса.
package schedule

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

type DBExecutor = dbmetrics.DBExecutor

// Repository read-only репозиторий расписаний и типов событий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetScheduleByProvider получает расписание провайдера вместе с правилами
func (r *Repository) GetScheduleByProvider(ctx context.Context, providerID int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"name",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("schedules").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleByProvider - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.Schedule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&schedule.ProviderID,
		&schedule.Name,
		&schedule.Timezone,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetScheduleByProvider - scan schedule: %v", ErrScanRow, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	rules, err := r.getRules(ctx, executor, schedule.ID)
	if err != nil {
		return nil, err
	}
	schedule.Rules = rules

	return &schedule, nil
}

// getRules получает правила расписания, отсортированные по времени начала
func (r *Repository) getRules(ctx context.Context, executor DBExecutor, scheduleID int64) ([]domain.AvailabilityRule, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"schedule_id",
		"weekdays",
		"start_time",
		"end_time",
	).
		From("availability_rules").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		var weekdays pq.Int64Array

		err := rows.Scan(
			&rule.ID,
			&rule.ScheduleID,
			&weekdays,
			&rule.StartTime,
			&rule.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getRules - scan rule: %v", ErrScanRow, err)
		}

		rule.Weekdays = make([]time.Weekday, len(weekdays))
		for i, wd := range weekdays {
			rule.Weekdays[i] = time.Weekday(wd)
		}

		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// GetOverridesInRange получает включённые date overrides провайдера,
// пересекающиеся с UTC окном [from, to)
func (r *Repository) GetOverridesInRange(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"reason",
		"start_at",
		"end_at",
		"enabled",
		"created_at",
		"updated_at",
	).
		From("date_overrides").
		Where(squirrel.Eq{"provider_id": providerID}).
		Where(squirrel.Eq{"enabled": true}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DateOverride, 0)
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverridesInRange - scan override: %v", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// scanOverride читает одну строку date_overrides. Колонка reason nullable,
// NULL читается как пустая причина.
func scanOverride(row interface{ Scan(dest ...interface{}) error }) (*domain.DateOverride, error) {
	var override domain.DateOverride
	var reason sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.ID,
		&override.ProviderID,
		&reason,
		&override.Start,
		&override.End,
		&override.Enabled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	override.Reason = reason.String
	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}

// GetEventType получает тип события по ID
func (r *Repository) GetEventType(ctx context.Context, id int64) (*domain.EventType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"name",
		"duration_minutes",
		"buffer_before_minutes",
		"buffer_after_minutes",
		"minimum_notice_minutes",
		"slot_interval_minutes",
		"requires_confirmation",
		"created_at",
		"updated_at",
	).
		From("event_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEventType - build select query: %v", ErrBuildQuery, err)
	}

	var eventType domain.EventType
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&eventType.ID,
		&eventType.ProviderID,
		&eventType.Name,
		&eventType.DurationMinutes,
		&eventType.BufferBeforeMinutes,
		&eventType.BufferAfterMinutes,
		&eventType.MinimumNoticeMinutes,
		&eventType.SlotIntervalMinutes,
		&eventType.RequiresConfirmation,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEventType - scan event type: %v", ErrScanRow, err)
	}

	eventType.CreatedAt = createdAt.Time
	eventType.UpdatedAt = updatedAt.Time

	return &eventType, nil
}
