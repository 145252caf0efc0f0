package reserve_slot

import (
	"time"

	"github.com/google/uuid"

	"github.com/huwelijksplanner/HP-BookingService/pkg/types"
)

// Request модель запроса на резервацию слота
type Request struct {
	UserID   string    // ID оператора, выполняющего резервацию (для аудита)
	HolderID uuid.UUID // ID досье, за которым закрепляется слот

	LocationID  int64  // ID локации
	OfficiantID *int64 // ID регистратора; nil = церемония без регистратора

	Date      time.Time        // Дата церемонии (без времени)
	StartTime types.TimeString // Время начала слота
	EndTime   types.TimeString // Время конца слота

	// Язык церемонии (ISO 639-1); пустая строка = без языкового требования
	CeremonyLanguage string

	// Override подтверждает выбор регистратора несмотря на языковое несоответствие
	Override       bool
	OverrideReason string
}

// Response модель ответа с созданной резервацией
type Response struct {
	ID          int64            // ID резервации
	LocationID  int64            // ID локации
	OfficiantID *int64           // ID регистратора (если назначен)
	HolderID    uuid.UUID        // ID досье
	Date        time.Time        // Дата церемонии
	StartTime   types.TimeString // Время начала
	EndTime     types.TimeString // Время конца
	Status      string           // Статус резервации

	LanguageOverride bool // Было ли переопределено языковое несоответствие

	CreatedAt time.Time
	UpdatedAt time.Time
}
