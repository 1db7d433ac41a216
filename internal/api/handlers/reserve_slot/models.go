package reserve_slot

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	reserveSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/reserve_slot"
)

// Машиночитаемые коды ошибок резервирования
const (
	codeInvalidDateOrTime = "INVALID_DATE_OR_TIME"
	codeSlotProcessing    = "SLOT_PROCESSING"
	codeSlotTaken         = "SLOT_TAKEN"
	codeBlockedDay        = "BLOCKED_DAY"
	codeClosedDay         = "CLOSED_DAY"
	codeNoSchedule        = "NO_SCHEDULE"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	CustomerPhone  string  `json:"customerPhone"`
	Date           string  `json:"date"`      // "2026-09-15"
	StartTime      string  `json:"startTime"` // "10:00"
	ServiceSlug    *string `json:"serviceSlug,omitempty"`
	HoldOnly       bool    `json:"holdOnly,omitempty"`
	HoldTTLSeconds *int    `json:"holdTtlSeconds,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	Status          string  `json:"status"` // "confirmed" | "held"
	AppointmentID   string  `json:"appointmentId,omitempty"`
	HoldExpiresAt   *string `json:"holdExpiresAt,omitempty"` // ISO 8601
	TenantID        int64   `json:"tenantId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
}

// SlotTakenResponse тело отказа SLOT_TAKEN с предложением альтернативы
type SlotTakenResponse struct {
	Error         string  `json:"error"`
	Code          string  `json:"code"`
	SuggestedTime *string `json:"suggestedTime,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Дата и время передаются сырыми строками: их синтаксис валидирует use case
func (r *ReserveSlotRequest) ToUseCaseRequest(tenantID int64) *reserveSlot.Request {
	return &reserveSlot.Request{
		TenantID:       tenantID,
		CustomerPhone:  r.CustomerPhone,
		Date:           r.Date,
		StartTime:      r.StartTime,
		ServiceSlug:    r.ServiceSlug,
		HoldOnly:       r.HoldOnly,
		HoldTTLSeconds: r.HoldTTLSeconds,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *reserveSlot.Response) *ReservationResponse {
	out := &ReservationResponse{
		Status:          string(resp.Status),
		AppointmentID:   resp.AppointmentID,
		TenantID:        resp.TenantID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
	}

	if resp.HoldExpiresAt != nil {
		formatted := resp.HoldExpiresAt.Format(time.RFC3339)
		out.HoldExpiresAt = &formatted
	}

	return out
}
