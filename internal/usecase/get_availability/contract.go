package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
)

// ScheduleResolver интерфейс резолвера расписания
type ScheduleResolver interface {
	ResolveDay(ctx context.Context, tenantID int64, date time.Time) (*schedule.DayResolution, error)
	ResolveDuration(ctx context.Context, tenantID int64, serviceSlug *string, granularityMinutes int) (int, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetActiveByTenantAndDate(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Appointment, error)
}

// HoldLister интерфейс чтения холдов из быстрого хранилища
type HoldLister interface {
	ListHolds(ctx context.Context, tenantID int64, date string) ([]*domain.Hold, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
