package availability

import (
	"sort"
	"time"

	"github.com/huwelijksplanner/HP-BookingService/internal/domain"
	"github.com/huwelijksplanner/HP-BookingService/internal/recurrence"
	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// RuleIssue ошибка расширения одного правила
// Не прерывает композицию: правило с ошибкой просто не даёт окон,
// вызывающая сторона логирует предупреждение
type RuleIssue struct {
	RuleID int64
	Err    error
}

// Compose вычисляет итоговые окна доступности ресурса на горизонте [from, to].
//
// Алгоритм:
//  1. Каждое активное правило разворачивается в сырые окна (recurrence.Expand).
//  2. Из каждого окна вычитается покрытие заблокированных дат: all-day блок
//     убирает окно целиком, частичный - вырезает [start, end) разверткой.
//  3. Тем же способом вычитаются busy интервалы уже подтверждённых церемоний.
//  4. Осколки короче minMinutes отбрасываются.
//  5. Результат сортируется по (date, start).
//
// Функция чистая и идемпотентна: одинаковые входы дают одинаковый результат.
func Compose(
	rules []*domain.RecurringRule,
	blocked []*domain.BlockedDate,
	busy []*domain.BusyInterval,
	from, to time.Time,
	minMinutes int,
) ([]domain.AvailabilityWindow, []RuleIssue) {
	issues := make([]RuleIssue, 0)
	raw := make([]recurrence.Occurrence, 0)
	ruleResource := make(map[int64]int64, len(rules))

	// 1. Разворачиваем все активные правила
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		ruleResource[rule.ID] = rule.ResourceID

		occurrences, err := recurrence.Expand(rule, from, to)
		if err != nil {
			// Деградация: сломанное правило не роняет композицию остальных
			issues = append(issues, RuleIssue{RuleID: rule.ID, Err: err})
			continue
		}

		raw = append(raw, occurrences...)
	}

	windows := make([]domain.AvailabilityWindow, 0, len(raw))

	for _, occ := range raw {
		// 2. Покрытие заблокированных дат
		if hasAllDayBlock(blocked, occ.Date) {
			continue
		}

		obstacles := partialBlocksOn(blocked, occ.Date)

		// 3. Busy интервалы подтверждённых церемоний
		obstacles = append(obstacles, busyOn(busy, occ.Date)...)

		// Развертка: вычитаем препятствия из сырого окна
		for _, segment := range subtract(occ.StartTime, occ.EndTime, obstacles) {
			// 4. Отбрасываем нежизнеспособные осколки
			length, err := segment.start.MinutesUntil(segment.end)
			if err != nil || length < minMinutes {
				continue
			}

			windows = append(windows, domain.AvailabilityWindow{
				ResourceID: ruleResource[occ.RuleID],
				RuleID:     occ.RuleID,
				Date:       occ.Date,
				StartTime:  segment.start,
				EndTime:    segment.end,
			})
		}
	}

	// 5. Итоговая сортировка
	sort.Slice(windows, func(i, j int) bool {
		if !windows[i].Date.Equal(windows[j].Date) {
			return windows[i].Date.Before(windows[j].Date)
		}
		if windows[i].StartTime != windows[j].StartTime {
			return windows[i].StartTime.IsBefore(windows[j].StartTime)
		}
		return windows[i].RuleID < windows[j].RuleID
	})

	return windows, issues
}

// interval полуинтервал [start, end) внутри одного дня
type interval struct {
	start types.TimeString
	end   types.TimeString
}

// subtract вычитает набор busy/blocked интервалов из окна [windowStart, windowEnd).
//
// Линейная развертка: препятствия сортируются по началу, курсор идёт от
// windowStart; каждый раз, когда препятствие начинается позже курсора,
// [cursor, busyStart) выживает; курсор прыгает на max(cursor, busyEnd).
// Хвост [cursor, windowEnd) выживает, если курсор не дошёл до конца.
// Детерминированно и идемпотентно, O(n log n) на окно.
func subtract(windowStart, windowEnd types.TimeString, obstacles []interval) []interval {
	if len(obstacles) == 0 {
		return []interval{{start: windowStart, end: windowEnd}}
	}

	sorted := make([]interval, len(obstacles))
	copy(sorted, obstacles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].start.IsBefore(sorted[j].start)
	})

	segments := make([]interval, 0, len(sorted)+1)
	cursor := windowStart

	for _, busy := range sorted {
		// Препятствия целиком вне окна не влияют на курсор
		if !busy.end.IsAfter(windowStart) || !busy.start.IsBefore(windowEnd) {
			continue
		}

		if busy.start.IsAfter(cursor) {
			segEnd := busy.start
			if windowEnd.IsBefore(segEnd) {
				segEnd = windowEnd
			}
			if cursor.IsBefore(segEnd) {
				segments = append(segments, interval{start: cursor, end: segEnd})
			}
		}

		cursor = types.Max(cursor, busy.end)
		if !cursor.IsBefore(windowEnd) {
			return segments
		}
	}

	if cursor.IsBefore(windowEnd) {
		segments = append(segments, interval{start: cursor, end: windowEnd})
	}

	return segments
}

// hasAllDayBlock проверяет наличие all-day блокировки на дату
func hasAllDayBlock(blocked []*domain.BlockedDate, date time.Time) bool {
	for _, b := range blocked {
		if b.AllDay && b.AppliesTo(date) {
			return true
		}
	}
	return false
}

// partialBlocksOn возвращает частичные блокировки, попадающие на дату
func partialBlocksOn(blocked []*domain.BlockedDate, date time.Time) []interval {
	result := make([]interval, 0)
	for _, b := range blocked {
		if b.AllDay || !b.AppliesTo(date) {
			continue
		}
		result = append(result, interval{start: b.StartTime, end: b.EndTime})
	}
	return result
}

// busyOn возвращает busy интервалы, попадающие на дату
func busyOn(busy []*domain.BusyInterval, date time.Time) []interval {
	result := make([]interval, 0)
	for _, b := range busy {
		y1, m1, d1 := b.Date.Date()
		y2, m2, d2 := date.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			continue
		}
		result = append(result, interval{start: b.StartTime, end: b.EndTime})
	}
	return result
}

// ContainsInterval проверяет, что [start, end) лежит целиком внутри одного
// из окон композиции на указанную дату. Используется на write path, чтобы
// никогда не доверять устаревшему окну, присланному клиентом.
func ContainsInterval(windows []domain.AvailabilityWindow, date time.Time, start, end types.TimeString) bool {
	for i := range windows {
		w := &windows[i]
		y1, m1, d1 := w.Date.Date()
		y2, m2, d2 := date.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			continue
		}
		if w.Contains(start, end) {
			return true
		}
	}
	return false
}
