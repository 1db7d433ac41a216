package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	TenantID    int64
	Date        time.Time // дата без времени
	ServiceSlug *string   // опционально: услуга для расчёта длительности
	// CustomerPhone опционально: собственные холды этого клиента
	// не скрывают от него слот
	CustomerPhone string
}

// WorkingHours рабочее окно дня
type WorkingHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// Response модель ответа с доступными и занятыми слотами
type Response struct {
	Date     time.Time
	TenantID int64

	// Available упорядоченный список свободных времён начала
	Available []types.TimeString
	// Booked времена начала уже занятых записей (для отображения)
	Booked []types.TimeString

	// WorkingHours nil, если день не рабочий
	WorkingHours *WorkingHours

	// DurationMinutes эффективная длительность, использованная при расчёте
	DurationMinutes int

	Blocked    bool
	Closed     bool
	NoSchedule bool
}
