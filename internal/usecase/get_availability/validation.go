package get_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ServiceSlug != nil && *req.ServiceSlug == "" {
		return fmt.Errorf("%w: serviceSlug must not be empty when provided", ErrInvalidInput)
	}

	return nil
}
