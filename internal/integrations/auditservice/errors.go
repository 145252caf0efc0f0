package auditservice

import "errors"

var (
	// ErrInternal внутренняя ошибка клиента AuditService
	ErrInternal = errors.New("auditservice client: internal error")

	// ErrInvalidResponse некорректный ответ от AuditService
	ErrInvalidResponse = errors.New("auditservice client: invalid response")
)
