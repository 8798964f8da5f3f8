package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/m04kA/SMC-ResourceBooking/internal/domain"
)

const confirmationsPath = "/internal/notifications/confirmations"

// BreakerSettings настройки circuit breaker
type BreakerSettings struct {
	FailureThreshold uint32        // Подряд идущих ошибок до размыкания
	OpenTimeout      time.Duration // Сколько цепь остаётся разомкнутой
	HalfOpenRequests uint32        // Пробных запросов в полуоткрытом состоянии
}

// Client клиент сервиса уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[struct{}]
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, settings BreakerSettings, log Logger) *Client {
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = 5
	}
	if settings.HalfOpenRequests == 0 {
		settings.HalfOpenRequests = 1
	}

	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "notifier",
		MaxRequests: settings.HalfOpenRequests,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker %s: %s -> %s", name, from.String(), to.String())
		},
	})

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: breaker,
		log:     log,
	}
}

// SendConfirmation отправляет подтверждение о созданном бронировании
func (c *Client) SendConfirmation(ctx context.Context, reservation *domain.Reservation) error {
	_, err := c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.post(ctx, NewConfirmation(reservation))
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: reservation_id=%d: %v", ErrServiceUnavailable, reservation.ID, err)
	}
	if err != nil {
		return err
	}

	c.log.Info("Confirmation sent for reservation_id=%d", reservation.ID)
	return nil
}

func (c *Client) post(ctx context.Context, confirmation Confirmation) error {
	body, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+confirmationsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		var errResp ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}
