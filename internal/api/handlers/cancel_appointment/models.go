package cancel_appointment

import "github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CustomerPhone      string `json:"customerPhone"`
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest() *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		CustomerPhone:      r.CustomerPhone,
		CancellationReason: r.CancellationReason,
	}
}
