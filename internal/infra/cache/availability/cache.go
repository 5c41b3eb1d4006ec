package availability

import (
	"fmt"
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
)

// Кеш результатов расчета доступности. Инжектируется в usecase явным объектом,
// а не глобальной переменной — тесты управляют временем и вытеснением.
// TTL ограничен: результат устаревает при любой конкурентной записи, поэтому
// кеш дополнительно инвалидируется по (тенант, дата) на путях записи.

// Key строит ключ кеша для одного запроса доступности
func Key(tenantID string, date time.Time, serviceID int64, intervalMinutes int) string {
	return fmt.Sprintf("%s:%d:%d", dayPrefix(tenantID, date), serviceID, intervalMinutes)
}

// dayPrefix общий префикс всех ключей одного тенанта и даты
// Используется инвалидацией на путях записи
func dayPrefix(tenantID string, date time.Time) string {
	return fmt.Sprintf("availability:%s:%s", tenantID, date.Format(domain.DateFormat))
}
