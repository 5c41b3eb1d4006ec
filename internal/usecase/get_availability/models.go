package get_availability

import (
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
)

// Request модель запроса на расчет доступности
type Request struct {
	TenantID        string    // ID тенанта
	ServiceID       int64     // ID услуги (определяет длительность слота)
	Date            time.Time // Дата расчета (без времени)
	IntervalMinutes int       // Шаг генерации кандидатов; 0 — дефолт из конфигурации
}

// Response модель ответа со списком доступных слотов
type Response struct {
	TenantID        string        // ID тенанта
	Date            time.Time     // Дата, на которую запрашивались слоты
	ServiceID       int64         // ID услуги
	DurationMinutes int           // Итоговая длительность услуги (возможно, дефолтная)
	IntervalMinutes int           // Использованный шаг генерации
	Slots           []domain.Slot // Слоты по возрастанию времени начала
}
