package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// TenantConfigRepository интерфейс репозитория настроек тенанта
type TenantConfigRepository interface {
	GetSettings(ctx context.Context, tenantID int64) (*domain.TenantSettings, error)
	GetWeeklyRules(ctx context.Context, tenantID int64) ([]domain.WeeklyRule, error)
	GetBlackoutForDate(ctx context.Context, tenantID int64, date time.Time) (*domain.BlackoutRange, error)
	GetServiceBySlug(ctx context.Context, tenantID int64, slug string) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
