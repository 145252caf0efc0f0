package ceremonyservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// Client клиент для работы с CeremonyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CeremonyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusyIntervals получает подтвержденные церемонии ресурса за период
// и возвращает их как занятые интервалы
func (c *Client) GetBusyIntervals(ctx context.Context, resourceID int64, from, to time.Time) ([]domain.BusyInterval, error) {
	url := fmt.Sprintf("%s/internal/resources/%d/ceremonies?from=%s&to=%s",
		c.baseURL, resourceID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		// Неизвестный ресурс для CeremonyService означает отсутствие церемоний
		return nil, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var payload ceremoniesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	intervals := make([]domain.BusyInterval, 0, len(payload.Ceremonies))
	for _, cer := range payload.Ceremonies {
		interval, err := toBusyInterval(cer)
		if err != nil {
			return nil, fmt.Errorf("%w: ceremony_id=%d: %v", ErrInvalidResponse, cer.ID, err)
		}
		intervals = append(intervals, interval)
	}

	return intervals, nil
}

// GetBusyIntervalsWithGracefulDegradation получает занятые интервалы с graceful degradation
// При недоступности CeremonyService возвращает ErrServiceDegraded: расписание в этом случае
// строится без учета церемоний, а запись в слот блокируется на уровне usecase
func (c *Client) GetBusyIntervalsWithGracefulDegradation(ctx context.Context, resourceID int64, from, to time.Time) ([]domain.BusyInterval, error) {
	intervals, err := c.GetBusyIntervals(ctx, resourceID, from, to)
	if err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("CeremonyService unavailable, applying graceful degradation for resource_id=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: resource_id=%d, error=%v", ErrServiceDegraded, resourceID, err)
	}

	c.log.Info("Fetched %d busy intervals for resource_id=%d", len(intervals), resourceID)
	return intervals, nil
}

func toBusyInterval(cer Ceremony) (domain.BusyInterval, error) {
	date, err := time.Parse(domain.DateFormat, cer.Date)
	if err != nil {
		return domain.BusyInterval{}, fmt.Errorf("bad date %q: %v", cer.Date, err)
	}

	start, err := types.NewTimeStringFromString(cer.StartTime)
	if err != nil {
		return domain.BusyInterval{}, fmt.Errorf("bad start time %q: %v", cer.StartTime, err)
	}

	end, err := types.NewTimeStringFromString(cer.EndTime)
	if err != nil {
		return domain.BusyInterval{}, fmt.Errorf("bad end time %q: %v", cer.EndTime, err)
	}

	return domain.BusyInterval{
		ResourceID: cer.ResourceID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
	}, nil
}
