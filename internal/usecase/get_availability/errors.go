package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// Проверяется до любого обращения к хранилищам
	ErrInvalidInput = errors.New("invalid input data")

	// ErrTenantNotFound возвращается, когда тенант не найден или деактивирован
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive возвращается, когда услуга выключена в каталоге
	ErrServiceInactive = errors.New("service is inactive")

	// ErrInternal возвращается при отказах хранилищ и внешних сервисов
	// Никогда не подменяется пустым списком слотов: пустой результат и отказ
	// хранилища обязаны быть различимы
	ErrInternal = errors.New("usecase: internal error")
)
