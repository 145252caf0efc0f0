package ceremonyservice

import "errors"

var (
	// ErrInternal внутренняя ошибка клиента CeremonyService
	ErrInternal = errors.New("ceremonyservice client: internal error")

	// ErrInvalidResponse некорректный ответ от CeremonyService
	ErrInvalidResponse = errors.New("ceremonyservice client: invalid response")

	// ErrServiceDegraded CeremonyService недоступен, данные о занятости не получены
	ErrServiceDegraded = errors.New("ceremonyservice client: service degraded")
)
