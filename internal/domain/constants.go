package domain

import "time"

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 30
	DefaultOpenTime               = "09:00"
	DefaultCloseTime              = "18:00"
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 240 // 4 часа
	MaxReasonLength           = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultOpenWeekdays дни недели, считающиеся рабочими при дефолтном
// расписании (у тенанта нет ни одного недельного правила)
var DefaultOpenWeekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
}

// IsDefaultOpenWeekday проверяет, входит ли день недели в дефолтный набор рабочих дней
func IsDefaultOpenWeekday(d time.Weekday) bool {
	for _, w := range DefaultOpenWeekdays {
		if w == d {
			return true
		}
	}
	return false
}

// InactiveStatuses статусы, не занимающие слот
// Запись никогда не удаляется физически, слот освобождает только отмена
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}

// ClampServiceDuration зажимает длительность услуги в допустимые границы
func ClampServiceDuration(minutes int) int {
	if minutes < MinServiceDurationMinutes {
		return MinServiceDurationMinutes
	}
	if minutes > MaxServiceDurationMinutes {
		return MaxServiceDurationMinutes
	}
	return minutes
}
