package schedule

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("resource not found")

	// ErrRuleNotFound возвращается, когда правило не найдено
	ErrRuleNotFound = errors.New("recurring rule not found")

	// ErrBlockedDateNotFound возвращается, когда блокировка даты не найдена
	ErrBlockedDateNotFound = errors.New("blocked date not found")

	// ErrInvalidRuleDefinition возвращается при некорректном определении правила:
	// неправильный порядок времени или отсутствующий/лишний параметр паттерна.
	// Отклоняется при создании и никогда не доходит до расширения
	ErrInvalidRuleDefinition = errors.New("invalid rule definition")

	// ErrInvalidBlockedDate возвращается при некорректной блокировке даты
	ErrInvalidBlockedDate = errors.New("invalid blocked date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule service: internal error")
)
