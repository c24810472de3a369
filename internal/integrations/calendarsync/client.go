// Package calendarsync реализует клиента сервиса синхронизации внешних
// календарей. Сервис отдаёт уже слитые busy-интервалы провайдера; OAuth
// механика подключения календарей живёт на его стороне.
package calendarsync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const readRetries = 2

// Client клиент сервиса синхронизации календарей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusyIntervals получает занятые интервалы провайдера в UTC окне [from, to)
func (c *Client) GetBusyIntervals(ctx context.Context, providerID int64, from, to time.Time) ([]BusyInterval, error) {
	endpoint := fmt.Sprintf("%s/internal/providers/%d/busy", c.baseURL, providerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	query := url.Values{}
	query.Set("from", from.UTC().Format(time.RFC3339))
	query.Set("to", to.UTC().Format(time.RFC3339))
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrProviderNotLinked
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var intervals []BusyInterval
	if err := json.NewDecoder(resp.Body).Decode(&intervals); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return intervals, nil
}

// GetBusyIntervalsWithRetry получает занятые интервалы с ограниченным числом
// повторов. Чтение идемпотентно, поэтому повторы безопасны. Провайдер без
// подключённого календаря - не ошибка: его внешний busy-набор пуст.
func (c *Client) GetBusyIntervalsWithRetry(ctx context.Context, providerID int64, from, to time.Time) ([]BusyInterval, error) {
	var lastErr error

	for attempt := 0; attempt <= readRetries; attempt++ {
		intervals, err := c.GetBusyIntervals(ctx, providerID, from, to)
		if err == nil {
			return intervals, nil
		}
		if err == ErrProviderNotLinked {
			c.log.Info("calendarsync: provider=%d has no linked calendar", providerID)
			return []BusyInterval{}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		lastErr = err
		c.log.Warn("calendarsync: attempt %d failed for provider=%d: %v", attempt+1, providerID, err)
	}

	c.log.Error("calendarsync: all attempts failed for provider=%d: %v", providerID, lastErr)
	return nil, fmt.Errorf("%w: provider=%d: %v", ErrServiceUnavailable, providerID, lastErr)
}

// DisabledClient заглушка для конфигураций без внешнего календаря:
// busy-набор всегда пуст
type DisabledClient struct{}

// GetBusyIntervalsWithRetry возвращает пустой набор
func (c *DisabledClient) GetBusyIntervalsWithRetry(_ context.Context, _ int64, _, _ time.Time) ([]BusyInterval, error) {
	return []BusyInterval{}, nil
}
