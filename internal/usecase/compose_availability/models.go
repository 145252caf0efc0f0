package compose_availability

import (
	"time"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// Request модель запроса на расчет доступности ресурса
type Request struct {
	UserID     string    // ID пользователя (для логирования, не влияет на результат)
	ResourceID int64     // ID ресурса (локация или регистратор)
	From       time.Time // Начало периода; zero value = сегодня
	To         time.Time // Конец периода; zero value = From + горизонт планирования
}

// Response модель ответа с рассчитанными окнами доступности
type Response struct {
	ResourceID int64     // ID ресурса
	From       time.Time // Фактическое начало периода
	To         time.Time // Фактический конец периода
	Windows    []Window  // Окна доступности, отсортированные по (дата, начало)

	// Blocked вырезанные из расписания промежутки с причиной блокировки.
	// Возвращаются для отображения оператору, в расчетах не участвуют
	Blocked []BlockedSpan

	// Degraded = true, когда CeremonyService был недоступен и занятость
	// подтвержденных церемоний не учтена в расчете
	Degraded bool
}

// BlockedSpan модель заблокированного промежутка
type BlockedSpan struct {
	Date      time.Time        // Дата блокировки (без времени)
	AllDay    bool             // Блокировка на весь день
	StartTime types.TimeString // Пусто при AllDay
	EndTime   types.TimeString // Пусто при AllDay
	Reason    string           // Причина блокировки
}

// Window модель окна доступности
type Window struct {
	RuleID          int64            // Правило, породившее окно
	Date            time.Time        // Дата окна (без времени)
	StartTime       types.TimeString // Время начала окна (например, "09:00")
	EndTime         types.TimeString // Время конца окна
	DurationMinutes int              // Длительность окна в минутах
}

func toBlockedSpans(blocked []*domain.BlockedDate) []BlockedSpan {
	result := make([]BlockedSpan, len(blocked))
	for i, b := range blocked {
		result[i] = BlockedSpan{
			Date:      b.Date,
			AllDay:    b.AllDay,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Reason:    b.Reason,
		}
	}
	return result
}

func toWindows(windows []domain.AvailabilityWindow) []Window {
	result := make([]Window, len(windows))
	for i := range windows {
		result[i] = Window{
			RuleID:          windows[i].RuleID,
			Date:            windows[i].Date,
			StartTime:       windows[i].StartTime,
			EndTime:         windows[i].EndTime,
			DurationMinutes: windows[i].DurationMinutes(),
		}
	}
	return result
}
