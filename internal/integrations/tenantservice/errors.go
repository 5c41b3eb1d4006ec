package tenantservice

import "errors"

var (
	// ErrTenantNotFound возвращается, когда тенант не найден или деактивирован
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("tenantservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("tenantservice client: invalid response")
)
