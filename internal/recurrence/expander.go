package recurrence

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

var (
	// ErrInvalidHorizon возвращается, когда горизонт расширения некорректен
	ErrInvalidHorizon = errors.New("recurrence: invalid expansion horizon")

	// ErrMissingParameter возвращается, когда у правила нет обязательного параметра паттерна
	ErrMissingParameter = errors.New("recurrence: missing pattern parameter")

	// ErrBadExpression возвращается при некорректном RRULE выражении custom правила
	ErrBadExpression = errors.New("recurrence: invalid recurrence expression")
)

// Occurrence одно сырое окно доступности, порождённое правилом на конкретную дату
type Occurrence struct {
	RuleID    int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Expand разворачивает правило в последовательность окон на горизонте [from, to]
// (включительно), обрезанном до окна действия правила [validFrom, validUntil].
// Результат упорядочен по дате. Окна разных правил никогда не объединяются -
// каждое несёт ссылку на породившее его правило. Горизонт всегда конечен
// (вызывающий код ограничивает его кварталом), поэтому все окна
// материализуются сразу одним срезом.
func Expand(rule *domain.RecurringRule, from, to time.Time) ([]Occurrence, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: from=%s is after to=%s",
			ErrInvalidHorizon, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}

	// Обрезаем горизонт до окна действия правила
	lower := dateOnly(from)
	if validFrom := dateOnly(rule.ValidFrom); validFrom.After(lower) {
		lower = validFrom
	}

	upper := dateOnly(to)
	if rule.ValidUntil != nil {
		if validUntil := dateOnly(*rule.ValidUntil); validUntil.Before(upper) {
			upper = validUntil
		}
	}

	if upper.Before(lower) {
		return []Occurrence{}, nil
	}

	// Для custom правил заранее считаем множество дат по RRULE выражению
	var customDates map[string]struct{}
	if rule.Kind == domain.PatternCustom {
		dates, err := expandExpression(rule, lower, upper)
		if err != nil {
			return nil, err
		}
		customDates = dates
	}

	occurrences := make([]Occurrence, 0)

	for day := lower; !day.After(upper); day = day.AddDate(0, 0, 1) {
		match, err := matches(rule, day, customDates)
		if err != nil {
			return nil, err
		}
		if !match {
			continue
		}

		occurrences = append(occurrences, Occurrence{
			RuleID:    rule.ID,
			Date:      day,
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
		})
	}

	return occurrences, nil
}

// matches проверяет, порождает ли правило окно на указанную дату
func matches(rule *domain.RecurringRule, day time.Time, customDates map[string]struct{}) (bool, error) {
	switch rule.Kind {
	case domain.PatternWeekly:
		if rule.DayOfWeek == nil {
			return false, fmt.Errorf("%w: weekly rule id=%d requires dayOfWeek", ErrMissingParameter, rule.ID)
		}
		return int(day.Weekday()) == *rule.DayOfWeek, nil

	case domain.PatternWorkdays:
		wd := day.Weekday()
		return wd >= time.Monday && wd <= time.Friday, nil

	case domain.PatternBiweekly:
		if rule.DayOfWeek == nil {
			return false, fmt.Errorf("%w: biweekly rule id=%d requires dayOfWeek", ErrMissingParameter, rule.ID)
		}
		if int(day.Weekday()) != *rule.DayOfWeek {
			return false, nil
		}
		return isActiveBiweek(rule.ValidFrom, day), nil

	case domain.PatternMonthlyByDay:
		if rule.DayOfMonth == nil {
			return false, fmt.Errorf("%w: monthly_by_day rule id=%d requires dayOfMonth", ErrMissingParameter, rule.ID)
		}
		// В месяцах без такого числа (например, 31 февраля) совпадения нет
		return day.Day() == *rule.DayOfMonth, nil

	case domain.PatternMonthlyByWeekday:
		if rule.DayOfWeek == nil || rule.WeekOfMonth == nil {
			return false, fmt.Errorf("%w: monthly_by_weekday rule id=%d requires dayOfWeek and weekOfMonth", ErrMissingParameter, rule.ID)
		}
		if int(day.Weekday()) != *rule.DayOfWeek {
			return false, nil
		}
		// N-й экземпляр дня недели в месяце; если N-го не существует, совпадения нет
		return weekdayInstanceOfMonth(day) == *rule.WeekOfMonth, nil

	case domain.PatternCustom:
		_, ok := customDates[day.Format(domain.DateFormat)]
		return ok, nil

	default:
		return false, fmt.Errorf("%w: rule id=%d has unknown pattern kind %q", ErrMissingParameter, rule.ID, rule.Kind)
	}
}

// isActiveBiweek решает, активна ли неделя даты day для biweekly правила.
// Якорь: ISO неделя (с понедельника), содержащая validFrom, считается активной,
// дальше недели чередуются.
func isActiveBiweek(validFrom, day time.Time) bool {
	anchor := startOfISOWeek(dateOnly(validFrom))
	current := startOfISOWeek(dateOnly(day))

	days := int(current.Sub(anchor).Hours() / 24)
	weeks := days / 7
	if weeks < 0 {
		weeks = -weeks
	}

	return weeks%2 == 0
}

// expandExpression разворачивает RRULE выражение custom правила в множество дат
func expandExpression(rule *domain.RecurringRule, lower, upper time.Time) (map[string]struct{}, error) {
	if rule.Expression == nil || *rule.Expression == "" {
		return nil, fmt.Errorf("%w: custom rule id=%d requires expression", ErrMissingParameter, rule.ID)
	}

	option, err := rrule.StrToROption(*rule.Expression)
	if err != nil {
		return nil, fmt.Errorf("%w: rule id=%d: %v", ErrBadExpression, rule.ID, err)
	}

	// Если DTSTART не задан в выражении, отсчитываем от начала действия правила
	if option.Dtstart.IsZero() {
		option.Dtstart = time.Date(
			rule.ValidFrom.Year(), rule.ValidFrom.Month(), rule.ValidFrom.Day(),
			0, 0, 0, 0, time.UTC,
		)
	}

	r, err := rrule.NewRRule(*option)
	if err != nil {
		return nil, fmt.Errorf("%w: rule id=%d: %v", ErrBadExpression, rule.ID, err)
	}

	rangeStart := time.Date(lower.Year(), lower.Month(), lower.Day(), 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(upper.Year(), upper.Month(), upper.Day(), 23, 59, 59, 0, time.UTC)

	dates := make(map[string]struct{})
	for _, instance := range r.Between(rangeStart, rangeEnd, true) {
		dates[instance.Format(domain.DateFormat)] = struct{}{}
	}

	return dates, nil
}

// weekdayInstanceOfMonth возвращает порядковый номер дня недели в месяце (1..5)
func weekdayInstanceOfMonth(day time.Time) int {
	return (day.Day()-1)/7 + 1
}

// startOfISOWeek возвращает понедельник недели, содержащей дату
func startOfISOWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// dateOnly обнуляет время, оставляя только дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
