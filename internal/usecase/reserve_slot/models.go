package reserve_slot

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на резервирование слота
// Дата и время приходят сырыми строками: их синтаксис валидируется
// до захвата блокировки
type Request struct {
	TenantID      int64
	CustomerPhone string
	Date          string  // YYYY-MM-DD
	StartTime     string  // HH:MM
	ServiceSlug   *string // опционально

	// HoldOnly вместо подтверждённой записи создать временный холд
	HoldOnly bool
	// HoldTTLSeconds запрошенный TTL холда, зажимается в границы из конфигурации
	HoldTTLSeconds *int
}

// ReservationStatus терминальный статус попытки резервирования
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusHeld      ReservationStatus = "held"
)

// Response модель ответа успешного резервирования
type Response struct {
	Status ReservationStatus

	// AppointmentID заполнен при Status == confirmed
	AppointmentID string

	// HoldExpiresAt заполнен при Status == held
	HoldExpiresAt *time.Time

	TenantID        int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}
