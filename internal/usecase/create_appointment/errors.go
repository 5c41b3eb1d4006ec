package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrTenantNotFound возвращается, когда тенант не найден или деактивирован
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive возвращается, когда услуга выключена в каталоге
	ErrServiceInactive = errors.New("service is inactive")

	// ErrNoScheduleForDay возвращается, когда на день недели нет рабочих окон
	ErrNoScheduleForDay = errors.New("no working schedule for this day")

	// ErrOutsideSchedule возвращается, когда встреча не помещается в рабочие окна
	ErrOutsideSchedule = errors.New("appointment is outside working hours")

	// ErrSlotNotAvailable возвращается, когда ёмкость слота исчерпана
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrDateInPast возвращается при попытке записи на прошедшую дату
	ErrDateInPast = errors.New("appointment date is in the past")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
