package auditservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client клиент для работы с AuditService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента AuditService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Record отправляет событие аудита
func (c *Client) Record(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/audit/events", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}

// RecordCancellation фиксирует отмену резервации в журнале аудита
func (c *Client) RecordCancellation(ctx context.Context, reservationID int64, holderID uuid.UUID, reason string) error {
	return c.Record(ctx, Event{
		Kind:          KindReservationCancelled,
		ReservationID: reservationID,
		HolderID:      holderID.String(),
		Reason:        reason,
	})
}

// RecordReservationCreated фиксирует создание резервации в журнале аудита
func (c *Client) RecordReservationCreated(ctx context.Context, reservationID, locationID int64, holderID uuid.UUID) error {
	return c.Record(ctx, Event{
		Kind:          KindReservationCreated,
		ReservationID: reservationID,
		ResourceID:    locationID,
		HolderID:      holderID.String(),
	})
}

// RecordEligibilityOverride фиксирует явное подтверждение языкового несоответствия.
// Каждое переопределение должно оставлять след с идентификатором оператора
func (c *Client) RecordEligibilityOverride(ctx context.Context, officiantID int64, holderID uuid.UUID, actorID string, reason string) error {
	return c.Record(ctx, Event{
		Kind:       KindEligibilityOverride,
		ResourceID: officiantID,
		HolderID:   holderID.String(),
		ActorID:    actorID,
		Reason:     reason,
	})
}

// RecordBestEffort отправляет событие аудита без влияния на основной сценарий.
// Аудит не должен блокировать бронирование: ошибка только логируется
func (c *Client) RecordBestEffort(ctx context.Context, event Event) {
	if err := c.Record(ctx, event); err != nil {
		c.log.Error("AuditService: failed to record event kind=%s reservation_id=%d: %v",
			event.Kind, event.ReservationID, err)
		return
	}

	c.log.Info("AuditService: recorded event kind=%s reservation_id=%d", event.Kind, event.ReservationID)
}
