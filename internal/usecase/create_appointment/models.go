package create_appointment

import (
	"time"

	"github.com/salonkit/SK-AvailabilityService/pkg/types"
)

// Request модель запроса на создание встречи
type Request struct {
	CustomerID int64            // ID клиента (из заголовка аутентификации)
	TenantID   string           // ID тенанта
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата встречи (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	StaffID    *string          // Конкретный сотрудник (опционально)
	Notes      *string          // Заметки клиента
}

// Response модель ответа с созданной встречей
type Response struct {
	ID              int64
	TenantID        string
	CustomerID      int64
	ServiceID       int64
	StaffID         *string
	ScheduledAt     time.Time
	DurationMinutes int
	Status          string
	ServiceName     string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
