package reserve_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrLocationNotFound возвращается, когда локация не найдена или ресурс не является локацией
	ErrLocationNotFound = errors.New("location not found")

	// ErrOfficiantNotFound возвращается, когда регистратор не найден или ресурс не является регистратором
	ErrOfficiantNotFound = errors.New("officiant not found")

	// ErrOfficiantNotEligible возвращается, когда регистратор неактивен,
	// не сертифицирован на дату церемонии или занят в запрошенном интервале
	ErrOfficiantNotEligible = errors.New("officiant is not eligible for this ceremony")

	// ErrOverrideRequired возвращается при языковом несоответствии регистратора
	// без явного подтверждения. Мягкое несоответствие можно переопределить
	// повторным запросом с override = true
	ErrOverrideRequired = errors.New("officiant language mismatch requires explicit override")

	// ErrSlotNotAvailable возвращается, когда интервал не лежит в окне доступности
	// локации или вместимость локации исчерпана
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrSlotConflict возвращается при проигрыше гонки за слот.
	// Ошибка временная: запрос можно безопасно повторить
	ErrSlotConflict = errors.New("slot was taken by a concurrent reservation")

	// ErrScheduleUnavailable возвращается, когда занятость подтвержденных церемоний
	// недоступна. Резервация без актуальной занятости небезопасна и блокируется
	ErrScheduleUnavailable = errors.New("ceremony schedule is unavailable, reservation rejected")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
