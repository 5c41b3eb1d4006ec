package get_availability

import (
	"time"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
)

// generateSlots генерирует доступные слоты для одного дня
//
// Ёмкость дня — количество рабочих окон (N сотрудников в одно время = N
// параллельных встреч); ёмкость фунгибельна, любой ресурс обслуживает любой слот.
// Кандидаты идут от минимального начала окон до максимального конца с фиксированным
// шагом; кандидат выдается, если число пересекающихся встреч строго меньше ёмкости.
//
// Границы кандидатов проверяются против агрегированного max(конец окна), а не
// против конкретного окна: слот может быть принят, даже если целиком помещается
// только в самое широкое окно. Это осознанное послабление в пользу доступности,
// согласованное с владельцами продукта; внешние вызывающие уже зависят от него.
//
// Все сравнения — целые unix-секунды после привязки времени суток к дате в
// тайм-зоне тенанта; плавающая точка не используется.
func generateSlots(
	windows []domain.ScheduleWindow,
	intervals []domain.AppointmentInterval,
	date time.Time,
	loc *time.Location,
	serviceDurationMinutes int,
	intervalMinutes int,
) ([]domain.Slot, error) {
	earliest, latest, ok := domain.ScheduleBounds(windows)
	if !ok {
		return []domain.Slot{}, nil
	}

	resourceCount := len(windows)

	windowStart, err := earliest.AnchorTo(date, loc)
	if err != nil {
		return nil, err
	}
	windowEnd, err := latest.AnchorTo(date, loc)
	if err != nil {
		return nil, err
	}

	serviceSeconds := int64(serviceDurationMinutes) * 60
	stepSeconds := int64(intervalMinutes) * 60
	endUnix := windowEnd.Unix()

	slots := make([]domain.Slot, 0)

	// Слот обязан целиком поместиться до закрытия: кандидат, чей конец выходит
	// за latest, не выдается, даже если его начало еще внутри окна
	for cursor := windowStart.Unix(); cursor+serviceSeconds <= endUnix; cursor += stepSeconds {
		concurrent := countOverlapping(cursor, cursor+serviceSeconds, intervals)
		if concurrent < resourceCount {
			slots = append(slots, domain.Slot{
				Start: time.Unix(cursor, 0).In(loc),
				End:   time.Unix(cursor+serviceSeconds, 0).In(loc),
			})
		}
	}

	return slots, nil
}

// countOverlapping подсчитывает количество встреч, пересекающих полуоткрытый
// интервал [startUnix, endUnix). Граничащие интервалы не пересекаются:
// встреча, заканчивающаяся ровно в начале слота, слот не занимает.
//
// Линейный проход по встречам дня; при десятках встреч и десятках кандидатов
// этого достаточно. Для больших объемов эквивалентная замена — отсортировать
// интервалы один раз и искать пересечения бинарным поиском.
func countOverlapping(startUnix, endUnix int64, intervals []domain.AppointmentInterval) int {
	count := 0

	for _, interval := range intervals {
		// Отмененные исключены в SQL; фильтр остается на случай прямых вызовов
		if !interval.ConsumesCapacity() {
			continue
		}
		if interval.Overlaps(startUnix, endUnix) {
			count++
		}
	}

	return count
}
