package reserve_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if req.ServiceSlug != nil && *req.ServiceSlug == "" {
		return fmt.Errorf("%w: serviceSlug must not be empty when provided", ErrInvalidInput)
	}

	return nil
}

// parseDateTime парсит и нормализует дату и время запроса
// Любая синтаксическая ошибка - ErrInvalidDateTime, без захвата блокировки
func parseDateTime(req *Request) (time.Time, types.TimeString, error) {
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: date %q", ErrInvalidDateTime, req.Date)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: time %q", ErrInvalidDateTime, req.StartTime)
	}

	return date, startTime, nil
}

// clampHoldTTL зажимает запрошенный TTL холда в границы из конфигурации
func clampHoldTTL(requested *int, minSec, maxSec, defaultSec int) time.Duration {
	ttlSec := defaultSec
	if requested != nil {
		ttlSec = *requested
	}
	if ttlSec < minSec {
		ttlSec = minSec
	}
	if ttlSec > maxSec {
		ttlSec = maxSec
	}
	return time.Duration(ttlSec) * time.Second
}
