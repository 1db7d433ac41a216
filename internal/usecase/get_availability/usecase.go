package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	scheduleService "github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case расчёта доступных слотов на дату
//
// Занятость складывается из подтверждённых записей и чужих неистёкших
// холдов; сетка кандидатов идёт с шагом гранулярности тенанта, на сегодня
// дополнительно действует отсечка по лид-тайму. Вся арифметика - в
// таймзоне тенанта, таймзона сервера значения не имеет
type UseCase struct {
	scheduleResolver ScheduleResolver
	appointmentRepo  AppointmentRepository
	holdLister       HoldLister
	timeProvider     TimeProvider
	logger           Logger

	// дефолтный лид-тайм на сегодня, если у тенанта нет переопределения
	defaultMinLeadMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleResolver ScheduleResolver,
	appointmentRepo AppointmentRepository,
	holdLister HoldLister,
	defaultMinLeadMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleResolver:      scheduleResolver,
		appointmentRepo:       appointmentRepo,
		holdLister:            holdLister,
		timeProvider:          &RealTimeProvider{},
		logger:                logger,
		defaultMinLeadMinutes: defaultMinLeadMinutes,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case расчёта доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: tenant=%d, date=%s, service=%v",
		req.TenantID, req.Date.Format(domain.DateFormat), req.ServiceSlug)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Резолвим рабочее окно дня
	day, err := uc.scheduleResolver.ResolveDay(ctx, req.TenantID, req.Date)
	if err != nil {
		if errors.Is(err, scheduleService.ErrNoSchedule) {
			uc.logger.Warn("GetAvailability: tenant=%d has no schedule", req.TenantID)
			return &Response{
				Date:       req.Date,
				TenantID:   req.TenantID,
				Available:  []types.TimeString{},
				Booked:     []types.TimeString{},
				NoSchedule: true,
			}, nil
		}
		uc.logger.Error("GetAvailability: failed to resolve day: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve day: %v", ErrInternal, err)
	}

	// 3. Блокировка или закрытый день - слотов нет
	if day.Blocked {
		uc.logger.Info("GetAvailability: tenant=%d is blocked on %s", req.TenantID, req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			TenantID:  req.TenantID,
			Available: []types.TimeString{},
			Booked:    []types.TimeString{},
			Blocked:   true,
		}, nil
	}
	if day.Closed {
		uc.logger.Info("GetAvailability: tenant=%d is closed on %s", req.TenantID, req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			TenantID:  req.TenantID,
			Available: []types.TimeString{},
			Booked:    []types.TimeString{},
			Closed:    true,
		}, nil
	}

	workingHours := &WorkingHours{Open: day.OpenTime, Close: day.CloseTime}

	// 4. Эффективная длительность услуги
	duration, err := uc.scheduleResolver.ResolveDuration(ctx, req.TenantID, req.ServiceSlug, day.GranularityMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve duration: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve duration: %v", ErrInternal, err)
	}

	// 5. Текущее время в таймзоне тенанта
	now := uc.timeProvider.Now().In(day.Location)

	// Дата в прошлом - доступных слотов нет, но занятые показываем
	pastDate := isDateInPast(req.Date, now)

	// 6. Активные записи на дату
	appointments, err := uc.appointmentRepo.GetActiveByTenantAndDate(ctx, req.TenantID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	booked := make([]types.TimeString, 0, len(appointments))
	for _, apt := range appointments {
		booked = append(booked, apt.StartTime)
	}

	if pastDate {
		return &Response{
			Date:            req.Date,
			TenantID:        req.TenantID,
			Available:       []types.TimeString{},
			Booked:          booked,
			WorkingHours:    workingHours,
			DurationMinutes: duration,
		}, nil
	}

	// 7. Неистёкшие холды на дату
	holds, err := uc.holdLister.ListHolds(ctx, req.TenantID, req.Date.Format(domain.DateFormat))
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list holds: %v", err)
		return nil, fmt.Errorf("%w: failed to list holds: %v", ErrInternal, err)
	}

	busy := buildBusyIntervals(appointments, holds, req.CustomerPhone, now)

	// 8. Отсечка по лид-тайму действует только на сегодня
	minStartMin := -1
	if isSameDay(req.Date, now) {
		leadMinutes := uc.defaultMinLeadMinutes
		if day.MinLeadMinutes != nil {
			leadMinutes = *day.MinLeadMinutes
		}
		cutoff := now.Add(time.Duration(leadMinutes) * time.Minute)
		minStartMin = cutoff.Hour()*60 + cutoff.Minute()
	}

	// 9. Генерируем сетку свободных слотов
	available, err := generateAvailableSlots(
		day.OpenTime,
		day.CloseTime,
		day.GranularityMinutes,
		duration,
		busy,
		minStartMin,
	)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: tenant=%d, date=%s: %d available, %d booked",
		req.TenantID, req.Date.Format(domain.DateFormat), len(available), len(booked))

	return &Response{
		Date:            req.Date,
		TenantID:        req.TenantID,
		Available:       available,
		Booked:          booked,
		WorkingHours:    workingHours,
		DurationMinutes: duration,
	}, nil
}
