package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a durable appointment record
// Длительность фиксируется в момент создания и больше не пересчитывается:
// изменение услуги после подтверждения не двигает занятый интервал
type Appointment struct {
	ID              string // UUID
	TenantID        int64
	CustomerPhone   string
	Date            time.Time // дата слота (без времени), в таймзоне тенанта
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus
	ServiceSlug     *string // NULL = услуга не указана, использована базовая гранулярность

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// EndTime возвращает время окончания занятого интервала
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}
