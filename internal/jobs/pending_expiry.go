// Package jobs содержит фоновые задачи сервиса
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

const expiryReason = "pending booking expired: provider did not confirm in time"

// runTimeout ограничивает один проход sweeper'а
const runTimeout = 30 * time.Second

// PendingExpiry отменяет протухшие pending бронирования.
// Заявки, которые провайдер не подтвердил за TTL, освобождают слот для
// других клиентов.
type PendingExpiry struct {
	bookingRepo  BookingRepository
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger

	cron *cron.Cron
}

// NewPendingExpiry создает sweeper с заданным TTL pending бронирований
func NewPendingExpiry(bookingRepo BookingRepository, ttl time.Duration, logger Logger) *PendingExpiry {
	return &PendingExpiry{
		bookingRepo:  bookingRepo,
		ttl:          ttl,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Start регистрирует задачу по cron расписанию и запускает планировщик
func (j *PendingExpiry) Start(spec string) error {
	c := cron.New()

	if _, err := c.AddFunc(spec, j.runOnce); err != nil {
		return err
	}

	c.Start()
	j.cron = c
	j.logger.Info("PendingExpiry: started with spec=%q, ttl=%s", spec, j.ttl)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего прохода
func (j *PendingExpiry) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
	j.logger.Info("PendingExpiry: stopped")
}

func (j *PendingExpiry) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := j.Run(ctx); err != nil {
		j.logger.Error("PendingExpiry: sweep failed: %v", err)
	}
}

// Run выполняет один проход: все pending старше TTL отменяются.
// Идемпотентен, повторный запуск ничего не находит.
func (j *PendingExpiry) Run(ctx context.Context) error {
	cutoff := j.timeProvider.Now().Add(-j.ttl)

	uids, err := j.bookingRepo.ExpirePendingCreatedBefore(ctx, cutoff, expiryReason)
	if err != nil {
		return err
	}

	if len(uids) > 0 {
		j.logger.Info("PendingExpiry: expired %d pending bookings: %v", len(uids), uids)
	}
	return nil
}
