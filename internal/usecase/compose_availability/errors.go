package compose_availability

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("resource not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidPeriod возвращается при некорректном периоде запроса
	ErrInvalidPeriod = errors.New("invalid availability period")

	// ErrPeriodTooLong возвращается, когда период превышает горизонт планирования
	ErrPeriodTooLong = errors.New("period exceeds planning horizon")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
