package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// busyInterval занятый интервал в минутах с начала суток
type busyInterval struct {
	startMin int
	endMin   int
}

// overlaps проверяет реальное пересечение с интервалом-кандидатом
// Строгие неравенства: граничащие интервалы (конец одного = начало другого)
// пересечением не считаются
func (b busyInterval) overlaps(startMin, endMin int) bool {
	return b.startMin < endMin && b.endMin > startMin
}

// buildBusyIntervals собирает занятые интервалы дня:
// активные записи (по их зафиксированной длительности) плюс неистёкшие
// холды, не принадлежащие запрашивающему клиенту
func buildBusyIntervals(
	appointments []*domain.Appointment,
	holds []*domain.Hold,
	requestingPhone string,
	now time.Time,
) []busyInterval {
	intervals := make([]busyInterval, 0, len(appointments)+len(holds))

	for _, apt := range appointments {
		if !apt.IsActive() {
			continue
		}
		startMin, err := apt.StartTime.Minutes()
		if err != nil {
			continue
		}
		intervals = append(intervals, busyInterval{
			startMin: startMin,
			endMin:   startMin + apt.DurationMinutes,
		})
	}

	for _, hold := range holds {
		if hold.IsExpired(now) {
			continue
		}
		// Собственный холд клиента не скрывает от него слот
		if hold.OwnedBy(requestingPhone) {
			continue
		}
		startMin, err := hold.StartTime.Minutes()
		if err != nil {
			continue
		}
		intervals = append(intervals, busyInterval{
			startMin: startMin,
			endMin:   startMin + hold.DurationMinutes,
		})
	}

	return intervals
}

// generateAvailableSlots строит упорядоченный список свободных времён начала
//
// Сетка идёт с шагом гранулярности тенанта (не длительности услуги - шаг
// может быть мельче), кандидат валиден, если его интервал длительности
// услуги не пересекает ни один занятый интервал и заканчивается не позже
// закрытия. minStartMin отсекает кандидатов раньше лид-тайма (на сегодня),
// отрицательное значение означает отсутствие отсечки
func generateAvailableSlots(
	openTime, closeTime types.TimeString,
	granularityMinutes, durationMinutes int,
	busy []busyInterval,
	minStartMin int,
) ([]types.TimeString, error) {
	openMin, err := openTime.Minutes()
	if err != nil {
		return nil, err
	}
	closeMin, err := closeTime.Minutes()
	if err != nil {
		return nil, err
	}

	available := make([]types.TimeString, 0)

	for startMin := openMin; startMin+durationMinutes <= closeMin; startMin += granularityMinutes {
		if minStartMin >= 0 && startMin < minStartMin {
			continue
		}

		endMin := startMin + durationMinutes
		free := true
		for _, b := range busy {
			if b.overlaps(startMin, endMin) {
				free = false
				break
			}
		}
		if !free {
			continue
		}

		available = append(available, minutesToTimeString(startMin))
	}

	return available, nil
}

func minutesToTimeString(min int) types.TimeString {
	return types.NewTimeString(time.Date(0, 1, 1, min/60, min%60, 0, 0, time.UTC))
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
