package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	tenantRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/tenantconfig"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service резолвер расписания: превращает настройки тенанта в эффективное
// рабочее окно на дату и эффективную длительность услуги
type Service struct {
	tenantRepo TenantConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр резолвера расписания
func NewService(tenantRepo TenantConfigRepository, logger Logger) *Service {
	return &Service{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// ResolveDay вычисляет эффективное рабочее окно тенанта на дату
//
// Порядок применения:
//  1. Дата в диапазоне блокировки - день полностью закрыт (Blocked),
//     недельное расписание не смотрим
//  2. Есть недельное правило на этот день недели - его окно
//  3. Недельных правил нет вовсе - дефолтные часы тенанта (или общесистемное
//     окно), но только на фиксированном наборе рабочих дней недели
//  4. Недельные правила есть, но на этот день недели правила нет - день
//     закрыт: явное отсутствие правила не означает фолбэк на дефолт
func (s *Service) ResolveDay(ctx context.Context, tenantID int64, date time.Time) (*DayResolution, error) {
	settings, err := s.tenantRepo.GetSettings(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrTenantNotFound) {
			s.logger.Warn("ResolveDay: tenant id=%d has no settings", tenantID)
			return nil, ErrNoSchedule
		}
		s.logger.Error("ResolveDay: failed to get settings for tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant settings: %v", ErrInternal, err)
	}

	loc, err := settings.Location()
	if err != nil {
		s.logger.Error("ResolveDay: tenant id=%d has invalid timezone %q: %v", tenantID, settings.Timezone, err)
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, settings.Timezone)
	}

	resolution := &DayResolution{
		Date:               date,
		GranularityMinutes: settings.SlotGranularityMinutes,
		MinLeadMinutes:     settings.MinLeadMinutes,
		Location:           loc,
	}

	// 1. Блокировка перекрывает всё остальное
	blackout, err := s.tenantRepo.GetBlackoutForDate(ctx, tenantID, date)
	if err != nil {
		s.logger.Error("ResolveDay: failed to get blackout for tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to get blackout: %v", ErrInternal, err)
	}
	if blackout != nil {
		resolution.Blocked = true
		resolution.BlockReason = blackout.Reason
		return resolution, nil
	}

	rules, err := s.tenantRepo.GetWeeklyRules(ctx, tenantID)
	if err != nil {
		s.logger.Error("ResolveDay: failed to get weekly rules for tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to get weekly rules: %v", ErrInternal, err)
	}

	weekday := date.Weekday()

	// 2/4. Недельное расписание настроено
	if len(rules) > 0 {
		for _, rule := range rules {
			if rule.DayOfWeek == int(weekday) {
				resolution.OpenTime = rule.OpenTime
				resolution.CloseTime = rule.CloseTime
				return resolution, nil
			}
		}
		resolution.Closed = true
		return resolution, nil
	}

	// 3. Правил нет - дефолтное окно на фиксированных рабочих днях
	if !domain.IsDefaultOpenWeekday(weekday) {
		resolution.Closed = true
		return resolution, nil
	}

	openTime := types.TimeString(domain.DefaultOpenTime)
	closeTime := types.TimeString(domain.DefaultCloseTime)
	if settings.DefaultOpenTime != nil && settings.DefaultCloseTime != nil {
		openTime = *settings.DefaultOpenTime
		closeTime = *settings.DefaultCloseTime
	}

	resolution.OpenTime = openTime
	resolution.CloseTime = closeTime
	return resolution, nil
}

// ResolveDuration вычисляет эффективную длительность для запрошенной услуги
// Если услуга не указана, не найдена или выключена - базовая гранулярность
// тенанта. Результат всегда зажимается в допустимые границы
func (s *Service) ResolveDuration(ctx context.Context, tenantID int64, serviceSlug *string, granularityMinutes int) (int, error) {
	if serviceSlug == nil || *serviceSlug == "" {
		return domain.ClampServiceDuration(granularityMinutes), nil
	}

	service, err := s.tenantRepo.GetServiceBySlug(ctx, tenantID, *serviceSlug)
	if err != nil {
		if errors.Is(err, tenantRepo.ErrServiceNotFound) {
			s.logger.Warn("ResolveDuration: service %q not found for tenant id=%d, using granularity", *serviceSlug, tenantID)
			return domain.ClampServiceDuration(granularityMinutes), nil
		}
		s.logger.Error("ResolveDuration: failed to get service %q for tenant id=%d: %v", *serviceSlug, tenantID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive || service.DurationMinutes <= 0 {
		return domain.ClampServiceDuration(granularityMinutes), nil
	}

	return domain.ClampServiceDuration(service.DurationMinutes), nil
}
