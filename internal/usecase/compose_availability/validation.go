package compose_availability

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if !req.From.IsZero() && !req.To.IsZero() && req.To.Before(req.From) {
		return fmt.Errorf("%w: to is before from", ErrInvalidPeriod)
	}

	return nil
}

// resolvePeriod приводит запрошенный период к фактическому.
// Пустые границы заменяются дефолтами, период ограничивается горизонтом планирования
func resolvePeriod(req *Request, now time.Time, horizonDays int) (time.Time, time.Time, error) {
	from := req.From
	if from.IsZero() {
		from = now
	}
	from = truncateToDay(from)

	to := req.To
	if to.IsZero() {
		to = from.AddDate(0, 0, horizonDays)
	}
	to = truncateToDay(to)

	maxTo := truncateToDay(now).AddDate(0, 0, horizonDays)
	if to.After(maxTo) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: period ends %s, horizon ends %s",
			ErrPeriodTooLong, to.Format("2006-01-02"), maxTo.Format("2006-01-02"))
	}

	return from, to, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
