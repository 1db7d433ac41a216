package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

// WorkingHoursResponse рабочее окно дня
type WorkingHoursResponse struct {
	Open  string `json:"open"`  // "09:00"
	Close string `json:"close"` // "18:00"
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TenantID        int64                 `json:"tenantId"`
	Date            string                `json:"date"` // "2026-09-15"
	Available       []string              `json:"available"`
	Booked          []string              `json:"booked"`
	WorkingHours    *WorkingHoursResponse `json:"workingHours,omitempty"`
	DurationMinutes int                   `json:"durationMinutes,omitempty"`
	Blocked         bool                  `json:"blocked,omitempty"`
	Closed          bool                  `json:"closed,omitempty"`
	NoSchedule      bool                  `json:"noSchedule,omitempty"`
}

// ToUseCaseRequest формирует запрос к use case с парсингом даты
func ToUseCaseRequest(tenantID int64, dateStr, serviceSlug, customerPhone string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailability.Request{
		TenantID:      tenantID,
		Date:          date,
		CustomerPhone: customerPhone,
	}
	if serviceSlug != "" {
		req.ServiceSlug = &serviceSlug
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		TenantID:        resp.TenantID,
		Date:            resp.Date.Format(domain.DateFormat),
		Available:       make([]string, 0, len(resp.Available)),
		Booked:          make([]string, 0, len(resp.Booked)),
		DurationMinutes: resp.DurationMinutes,
		Blocked:         resp.Blocked,
		Closed:          resp.Closed,
		NoSchedule:      resp.NoSchedule,
	}

	for _, t := range resp.Available {
		out.Available = append(out.Available, t.String())
	}
	for _, t := range resp.Booked {
		out.Booked = append(out.Booked, t.String())
	}

	if resp.WorkingHours != nil {
		out.WorkingHours = &WorkingHoursResponse{
			Open:  resp.WorkingHours.Open.String(),
			Close: resp.WorkingHours.Close.String(),
		}
	}

	return out
}
