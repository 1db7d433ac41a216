package domain

import "time"

// BlackoutRange диапазон дат, в котором тенант полностью закрыт
// Перекрывает недельное расписание: любая дата внутри диапазона (включительно)
// делает день заблокированным
type BlackoutRange struct {
	ID        int64
	TenantID  int64
	StartDate time.Time
	EndDate   time.Time
	Reason    *string

	CreatedAt time.Time
}

// Contains проверяет, попадает ли дата в диапазон (границы включительно)
func (b *BlackoutRange) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(b.StartDate)) && !d.After(truncateToDay(b.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
