package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonkit/SK-AvailabilityService/internal/domain"
	"github.com/salonkit/SK-AvailabilityService/pkg/types"
)

func window(start, end string) domain.ScheduleWindow {
	return domain.ScheduleWindow{
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		IsAvailable: true,
	}
}

func interval(t *testing.T, date time.Time, start string, durationMinutes int) domain.AppointmentInterval {
	t.Helper()

	startTime, err := types.TimeString(start).AnchorTo(date, time.UTC)
	require.NoError(t, err)

	return domain.AppointmentInterval{
		Start:           startTime,
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

// Понедельник 2026-09-07
var testDate = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

func slotStarts(slots []domain.Slot) []string {
	starts := make([]string, len(slots))
	for i, s := range slots {
		starts[i] = s.Start.Format("15:04")
	}
	return starts
}

func TestGenerateSlots_EmptyDayFullyFree(t *testing.T) {
	windows := []domain.ScheduleWindow{window("09:00", "12:00")}

	slots, err := generateSlots(windows, nil, testDate, time.UTC, 60, 30)
	require.NoError(t, err)

	// Кандидаты с 09:00 каждые 30 минут; последний, помещающийся до 12:00 — 11:00
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, slotStarts(slots))
}

func TestGenerateSlots_SingleResourceConflict(t *testing.T) {
	windows := []domain.ScheduleWindow{window("09:00", "12:00")}
	intervals := []domain.AppointmentInterval{
		interval(t, testDate, "10:00", 60),
	}

	slots, err := generateSlots(windows, intervals, testDate, time.UTC, 60, 30)
	require.NoError(t, err)

	// Встреча 10:00-11:00 блокирует кандидатов 09:30, 10:00 и 10:30;
	// 09:00-10:00 лишь граничит и остается свободным
	assert.Equal(t, []string{"09:00", "11:00"}, slotStarts(slots))
}

func TestGenerateSlots_TwoResourcesAbsorbOneAppointment(t *testing.T) {
	windows := []domain.ScheduleWindow{
		window("09:00", "12:00"),
		window("09:00", "12:00"),
	}
	intervals := []domain.AppointmentInterval{
		interval(t, testDate, "10:00", 60),
	}

	slots, err := generateSlots(windows, intervals, testDate, time.UTC, 60, 30)
	require.NoError(t, err)

	// Ёмкость 2: одна встреча не исчерпывает ни один кандидат
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, slotStarts(slots))
}

func TestGenerateSlots_TwoResourcesSecondAppointmentBlocks(t *testing.T) {
	windows := []domain.ScheduleWindow{
		window("09:00", "12:00"),
		window("09:00", "12:00"),
	}
	intervals := []domain.AppointmentInterval{
		interval(t, testDate, "10:00", 60),
		interval(t, testDate, "10:00", 60),
	}

	slots, err := generateSlots(windows, intervals, testDate, time.UTC, 60, 30)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "11:00"}, slotStarts(slots))
}

func TestGenerateSlots_BoundaryTouchDoesNotOverlap(t *testing.T) {
	windows := []domain.ScheduleWindow{window("09:00", "11:00")}
	intervals := []domain.AppointmentInterval{
		interval(t, testDate, "09:00", 60),
	}

	slots, err := generateSlots(windows, intervals, testDate, time.UTC, 60, 60)
	require.NoError(t, err)

	// Кандидат 10:00-11:00 начинается ровно в конце встречи — свободен
	assert.Equal(t, []string{"10:00"}, slotStarts(slots))
}

func TestGenerateSlots_ServiceDoesNotFitPastClosing(t *testing.T) {
	windows := []domain.ScheduleWindow{window("09:00", "10:30")}

	slots, err := generateSlots(windows, nil, testDate, time.UTC, 60, 30)
	require.NoError(t, err)

	// 09:30+60м = 10:30 — ровно до закрытия, помещается; 10:00 уже нет
	assert.Equal(t, []string{"09:00", "09:30"}, slotStarts(slots))
}

func TestGenerateSlots_ServiceLongerThanDay(t *testing.T) {
	windows := []domain.ScheduleWindow{window("09:00", "10:00")}

	slots, err := generateSlots(windows, nil, testDate, time.UTC, 90, 30)
	require.NoError(t, err)

	assert.Empty(t, slots)
}

func TestGenerateSlots_BoundsSpanAllWindows(t *testing.T) {
	// Второе окно шире: кандидаты идут от min(start) до max(end) по всем окнам
	windows := []domain.ScheduleWindow{
		window("10:00", "12:00"),
		window("08:00", "14:00"),
	}

	slots, err := generateSlots(windows, nil, testDate, time.UTC, 120, 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"08:00", "09:00", "10:00", "11:00", "12:00"}, slotStarts(slots))
}

func TestGenerateSlots_CancelledIntervalIgnored(t *testing.T) {
	windows := []domain.ScheduleWindow{window("09:00", "11:00")}

	cancelled := interval(t, testDate, "09:00", 120)
	cancelled.Status = domain.StatusCancelled

	slots, err := generateSlots(windows, []domain.AppointmentInterval{cancelled}, testDate, time.UTC, 60, 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00"}, slotStarts(slots))
}

func TestGenerateSlots_NoWindows(t *testing.T) {
	slots, err := generateSlots(nil, nil, testDate, time.UTC, 60, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_SlotsAreOrderedAndHalfOpen(t *testing.T) {
	windows := []domain.ScheduleWindow{window("09:00", "13:00")}

	slots, err := generateSlots(windows, nil, testDate, time.UTC, 45, 30)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i, s := range slots {
		assert.Equal(t, 45*time.Minute, s.Duration())
		if i > 0 {
			assert.True(t, slots[i-1].Start.Before(s.Start))
		}
	}
}
