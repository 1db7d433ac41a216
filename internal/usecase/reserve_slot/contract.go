package reserve_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AvailabilityCalculator интерфейс расчёта доступных слотов
// Оркестратор НИКОГДА не доверяет доступности, присланной клиентом:
// список пересчитывается заново внутри захваченной блокировки
type AvailabilityCalculator interface {
	Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
}

// SlotStore интерфейс быстрого хранилища блокировок и холдов
type SlotStore interface {
	AcquireLock(ctx context.Context, tenantID int64, date string, startTime types.TimeString, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, tenantID int64, date string, startTime types.TimeString) error
	SetHold(ctx context.Context, hold *domain.Hold, ttl time.Duration) error
	ClearHold(ctx context.Context, tenantID int64, date string, startTime types.TimeString) error
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

// MetricsObserver интерфейс записи метрик исходов резервирования
type MetricsObserver interface {
	ObserveReservation(result string)
	ObserveSlotLock(status string)
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// noopMetrics заглушка метрик, когда метрики выключены
type noopMetrics struct{}

func (noopMetrics) ObserveReservation(string) {}
func (noopMetrics) ObserveSlotLock(string)    {}
