package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// WeeklyRule правило расписания на день недели
// Для каждого дня недели у тенанта может быть не более одного правила
type WeeklyRule struct {
	TenantID  int64
	DayOfWeek int // 0 = воскресенье ... 6 = суббота (как time.Weekday)
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// ScheduleKind источник расписания тенанта
type ScheduleKind string

const (
	// ScheduleWeekly у тенанта настроены правила по дням недели
	ScheduleWeekly ScheduleKind = "weekly"
	// ScheduleDefault правил нет, используются дефолтные часы тенанта
	// (или общесистемное окно) на фиксированном наборе рабочих дней
	ScheduleDefault ScheduleKind = "default"
	// ScheduleUnconfigured расписание не настроено вовсе
	ScheduleUnconfigured ScheduleKind = "unconfigured"
)

// TenantSchedule расписание тенанта: размеченный вариант вместо
// слабо типизированного блоба переопределений
type TenantSchedule struct {
	Kind ScheduleKind

	// Rules заполнены только при Kind == ScheduleWeekly
	Rules []WeeklyRule

	// DefaultOpen/DefaultClose заполнены при Kind == ScheduleDefault
	DefaultOpen  types.TimeString
	DefaultClose types.TimeString
}

// RuleFor возвращает правило для дня недели, если оно есть
func (s *TenantSchedule) RuleFor(weekday time.Weekday) (WeeklyRule, bool) {
	for _, r := range s.Rules {
		if r.DayOfWeek == int(weekday) {
			return r, true
		}
	}
	return WeeklyRule{}, false
}

// TenantSettings базовые настройки тенанта, читаемые движком слотов
type TenantSettings struct {
	TenantID               int64
	Timezone               string // IANA, например "Europe/Istanbul"
	SlotGranularityMinutes int    // шаг сетки слотов
	DefaultOpenTime        *types.TimeString
	DefaultCloseTime       *types.TimeString
	MinLeadMinutes         *int // переопределение лид-тайма на сегодня, NULL = дефолт сервиса
}

// Location возвращает таймзону тенанта
// Вся арифметика времени движка выполняется в ней, а не в таймзоне сервера
func (s *TenantSettings) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}
