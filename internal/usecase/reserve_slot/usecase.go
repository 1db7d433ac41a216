package reserve_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Config параметры оркестратора резервирования
type Config struct {
	// LockTTL страховочный TTL блокировки слота: должен превышать худшее
	// время критической секции, явный ReleaseLock остаётся основным путём
	LockTTL time.Duration

	// Границы TTL холда
	HoldTTLMinSeconds     int
	HoldTTLMaxSeconds     int
	HoldTTLDefaultSeconds int
}

// UseCase оркестратор резервирования слота
//
// Протокол двухфазный: неблокирующий захват распределённой блокировки
// слота, пересчёт доступности внутри критической секции, затем либо
// временный холд, либо durable запись. Две конкурирующие попытки на один
// слот упорядочиваются блокировкой: проигравший видит эффект победителя
// при пересчёте и детерминированно получает отказ SLOT_TAKEN.
//
// Блокировка - оптимизация, а не единственная защита: финальный рубеж
// от двойной брони - уникальный индекс в БД, нарушение которого тоже
// сводится к SLOT_TAKEN
type UseCase struct {
	availability    AvailabilityCalculator
	appointmentRepo AppointmentRepository
	slotStore       SlotStore
	timeProvider    TimeProvider
	logger          Logger
	metrics         MetricsObserver
	cfg             Config
}

// NewUseCase создает новый экземпляр оркестратора
func NewUseCase(
	availability AvailabilityCalculator,
	appointmentRepo AppointmentRepository,
	slotStore SlotStore,
	cfg Config,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability:    availability,
		appointmentRepo: appointmentRepo,
		slotStore:       slotStore,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		metrics:         noopMetrics{},
		cfg:             cfg,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithMetrics подключает запись метрик исходов
func (uc *UseCase) WithMetrics(m MetricsObserver) *UseCase {
	if m != nil {
		uc.metrics = m
	}
	return uc
}

// Execute выполняет попытку резервирования слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: tenant=%d, phone=%s, date=%s, time=%s, holdOnly=%t",
		req.TenantID, req.CustomerPhone, req.Date, req.StartTime, req.HoldOnly)

	// 1. Валидация входа и синтаксиса даты/времени - до захвата блокировки
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	date, startTime, err := parseDateTime(req)
	if err != nil {
		uc.logger.Warn("ReserveSlot: date/time parsing failed: %v", err)
		uc.metrics.ObserveReservation("rejected")
		return nil, err
	}
	dateStr := date.Format(domain.DateFormat)

	// 2. Неблокирующий захват блокировки слота
	// Занятая блокировка - транзиентный отказ, клиент повторит сам;
	// серверных ретраев нет, чтобы не раздувать конкуренцию за блокировку
	acquired, err := uc.slotStore.AcquireLock(ctx, req.TenantID, dateStr, startTime, uc.cfg.LockTTL)
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to acquire lock for tenant=%d slot=%s %s: %v",
			req.TenantID, dateStr, startTime, err)
		uc.metrics.ObserveSlotLock("error")
		uc.metrics.ObserveReservation("error")
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	if !acquired {
		uc.logger.Warn("ReserveSlot: lock busy for tenant=%d slot=%s %s", req.TenantID, dateStr, startTime)
		uc.metrics.ObserveSlotLock("busy")
		uc.metrics.ObserveReservation("lock_failed")
		return nil, ErrSlotProcessing
	}
	uc.metrics.ObserveSlotLock("acquired")

	// Блокировка снимается на любом пути выхода, включая панику;
	// TTL в хранилище - только страховка от падения процесса
	defer func() {
		if err := uc.slotStore.ReleaseLock(ctx, req.TenantID, dateStr, startTime); err != nil {
			uc.logger.Error("ReserveSlot: failed to release lock for tenant=%d slot=%s %s: %v",
				req.TenantID, dateStr, startTime, err)
		}
	}()

	resp, err := uc.reserveLocked(ctx, req, date, dateStr, startTime)
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken),
			errors.Is(err, ErrBlockedDay),
			errors.Is(err, ErrClosedDay),
			errors.Is(err, ErrNoSchedule),
			errors.Is(err, ErrInvalidDateTime):
			uc.metrics.ObserveReservation("rejected")
		default:
			uc.metrics.ObserveReservation("error")
		}
		return nil, err
	}

	uc.metrics.ObserveReservation(string(resp.Status))
	return resp, nil
}

// reserveLocked тело критической секции: выполняется строго внутри
// захваченной блокировки слота
func (uc *UseCase) reserveLocked(
	ctx context.Context,
	req *Request,
	date time.Time,
	dateStr string,
	startTime types.TimeString,
) (*Response, error) {
	// 3. Пересчитываем доступность заново: все чтения (расписание,
	// занятость, холды) происходят внутри критической секции, чтобы
	// не принять решение по устаревшим данным
	availability, err := uc.availability.Execute(ctx, &getAvailability.Request{
		TenantID:      req.TenantID,
		Date:          date,
		ServiceSlug:   req.ServiceSlug,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		uc.logger.Error("ReserveSlot: failed to recompute availability: %v", err)
		return nil, fmt.Errorf("%w: failed to recompute availability: %v", ErrInternal, err)
	}

	switch {
	case availability.NoSchedule:
		uc.logger.Warn("ReserveSlot: tenant=%d has no schedule", req.TenantID)
		return nil, ErrNoSchedule
	case availability.Blocked:
		uc.logger.Warn("ReserveSlot: tenant=%d is blocked on %s", req.TenantID, dateStr)
		return nil, ErrBlockedDay
	case availability.Closed:
		uc.logger.Warn("ReserveSlot: tenant=%d is closed on %s", req.TenantID, dateStr)
		return nil, ErrClosedDay
	}

	// 4. Запрошенное время должно быть в актуальном списке свободных
	if !containsTime(availability.Available, startTime) {
		suggestion := suggestAlternative(availability.Available, startTime)
		uc.logger.Warn("ReserveSlot: slot taken for tenant=%d slot=%s %s, suggested=%v",
			req.TenantID, dateStr, startTime, suggestion)
		return nil, &SlotTakenError{SuggestedTime: suggestion}
	}

	duration := availability.DurationMinutes
	now := uc.timeProvider.Now()

	// 5. Hold-режим: временная резервация с ограниченным TTL
	if req.HoldOnly {
		ttl := clampHoldTTL(req.HoldTTLSeconds,
			uc.cfg.HoldTTLMinSeconds, uc.cfg.HoldTTLMaxSeconds, uc.cfg.HoldTTLDefaultSeconds)
		expiresAt := now.Add(ttl)

		hold := &domain.Hold{
			TenantID:        req.TenantID,
			Date:            dateStr,
			StartTime:       startTime,
			CustomerPhone:   req.CustomerPhone,
			DurationMinutes: duration,
			ExpiresAt:       expiresAt,
		}

		if err := uc.slotStore.SetHold(ctx, hold, ttl); err != nil {
			uc.logger.Error("ReserveSlot: failed to set hold for tenant=%d slot=%s %s: %v",
				req.TenantID, dateStr, startTime, err)
			return nil, fmt.Errorf("%w: failed to set hold: %v", ErrInternal, err)
		}

		uc.logger.Info("ReserveSlot: held tenant=%d slot=%s %s until %s",
			req.TenantID, dateStr, startTime, expiresAt.Format(time.RFC3339))

		return &Response{
			Status:          StatusHeld,
			HoldExpiresAt:   &expiresAt,
			TenantID:        req.TenantID,
			Date:            date,
			StartTime:       startTime,
			DurationMinutes: duration,
		}, nil
	}

	// 6. Durable запись со статусом confirmed и зафиксированной длительностью
	apt := &domain.Appointment{
		ID:              uuid.New().String(),
		TenantID:        req.TenantID,
		CustomerPhone:   req.CustomerPhone,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: duration,
		Status:          domain.StatusConfirmed,
		ServiceSlug:     req.ServiceSlug,
	}

	created, err := uc.appointmentRepo.Create(ctx, apt)
	if err != nil {
		// Гонка в последний момент, которую блокировка не покрыла
		// (например, legacy-путь прямой вставки): нарушение уникального
		// индекса - это проигранный слот, а не системный сбой
		if errors.Is(err, appointmentRepo.ErrSlotConflict) {
			suggestion := suggestAlternative(
				excludeTime(availability.Available, startTime), startTime)
			uc.logger.Warn("ReserveSlot: unique violation for tenant=%d slot=%s %s, demoted to slot taken",
				req.TenantID, dateStr, startTime)
			return nil, &SlotTakenError{SuggestedTime: suggestion}
		}
		uc.logger.Error("ReserveSlot: failed to create appointment: %v", err)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	// 7. Подтверждённая запись делает холд этого слота неактуальным
	if err := uc.slotStore.ClearHold(ctx, req.TenantID, dateStr, startTime); err != nil {
		// Холд истечёт сам по TTL, подтверждение из-за этого не откатываем
		uc.logger.Warn("ReserveSlot: failed to clear hold for tenant=%d slot=%s %s: %v",
			req.TenantID, dateStr, startTime, err)
	}

	uc.logger.Info("ReserveSlot: confirmed appointment id=%s for tenant=%d slot=%s %s",
		created.ID, req.TenantID, dateStr, startTime)

	return &Response{
		Status:          StatusConfirmed,
		AppointmentID:   created.ID,
		TenantID:        req.TenantID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: duration,
	}, nil
}

func containsTime(list []types.TimeString, t types.TimeString) bool {
	for _, item := range list {
		if item == t {
			return true
		}
	}
	return false
}

func excludeTime(list []types.TimeString, t types.TimeString) []types.TimeString {
	filtered := make([]types.TimeString, 0, len(list))
	for _, item := range list {
		if item != t {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
