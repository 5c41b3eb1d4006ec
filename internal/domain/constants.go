package domain

// Default values
const (
	// DefaultServiceDurationMinutes подставляется, когда у услуги в каталоге
	// не задана длительность. Подстановка всегда логируется и попадает в метрики
	DefaultServiceDurationMinutes = 60

	// DefaultSlotIntervalMinutes шаг генерации кандидатов слотов
	DefaultSlotIntervalMinutes = 30
)

// Business validation constants
const (
	MinSlotIntervalMinutes    = 5
	MaxSlotIntervalMinutes    = 240
	MinServiceDurationMinutes = 1
	MaxServiceDurationMinutes = 480 // 8 hours

	MinWeekday = 0
	MaxWeekday = 6

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, удерживающих слот
// Все статусы кроме cancelled учитываются при подсчете занятости
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
