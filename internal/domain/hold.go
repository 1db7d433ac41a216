package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Hold эфемерная резервация слота на время оформления брони клиентом
// Живет только в быстром KV-хранилище с TTL, в БД не попадает
// Нужен исключительно для видимости: пока один клиент оформляет бронь,
// слот не показывается доступным другим клиентам
type Hold struct {
	TenantID        int64            `json:"tenantId"`
	Date            string           `json:"date"` // YYYY-MM-DD
	StartTime       types.TimeString `json:"startTime"`
	CustomerPhone   string           `json:"customerPhone"`
	DurationMinutes int              `json:"durationMinutes"`
	ExpiresAt       time.Time        `json:"expiresAt"`
}

// IsExpired проверяет, истек ли холд
func (h *Hold) IsExpired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}

// OwnedBy проверяет, принадлежит ли холд указанному клиенту
// Собственные холды клиента не скрывают от него слот
func (h *Hold) OwnedBy(customerPhone string) bool {
	return customerPhone != "" && h.CustomerPhone == customerPhone
}

// EndTime возвращает время окончания удерживаемого интервала
func (h *Hold) EndTime() (types.TimeString, error) {
	return h.StartTime.AddMinutes(h.DurationMinutes)
}
