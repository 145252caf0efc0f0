package filter_officiants

import (
	"time"

	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// Request модель запроса на подбор регистраторов для церемонии
type Request struct {
	UserID           string           // ID пользователя (для логирования, не влияет на результат)
	Date             time.Time        // Дата церемонии (без времени)
	StartTime        types.TimeString // Время начала церемонии
	EndTime          types.TimeString // Время конца церемонии
	CeremonyLanguage string           // Язык церемонии (ISO 639-1), пустая строка = без требования
}

// Response модель ответа со списком подходящих регистраторов
type Response struct {
	Date       time.Time   // Дата, на которую подбирались регистраторы
	Officiants []Officiant // Регистраторы, доступные в запрошенный интервал

	// Degraded = true, когда занятость церемоний хотя бы одного регистратора
	// не была получена из CeremonyService
	Degraded bool
}

// Officiant модель подходящего регистратора
type Officiant struct {
	ID        int64    // ID регистратора
	Name      string   // Имя регистратора
	Languages []string // Языки, на которых регистратор ведет церемонии

	// LanguageMismatch = true, когда регистратор не ведет церемонии на
	// запрошенном языке. Несоответствие мягкое: регистратор остается в
	// выдаче, но его выбор потребует явного подтверждения
	LanguageMismatch bool
}
