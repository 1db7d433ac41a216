package reserve_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	reserveSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/reserve_slot"
)

const (
	msgInvalidTenantID    = "некорректный ID тенанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgSlotProcessing     = "слот обрабатывается другим запросом, повторите попытку"
	msgSlotTaken          = "выбранное время занято"
	msgBlockedDay         = "день заблокирован для записи"
	msgClosedDay          = "день не рабочий"
	msgNoSchedule         = "расписание тенанта не настроено"
)

type Handler struct {
	useCase ReserveSlotUseCase
	logger  Logger
}

func NewHandler(useCase ReserveSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем tenantId из URL
	tenantIDStr := vars["tenantId"]
	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/reservations - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	var req ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID))
	if err != nil {
		h.respondError(w, tenantID, &req, err)
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /tenants/{id}/reservations - Reservation %s: tenant_id=%d, date=%s, time=%s, appointment_id=%s",
		result.Status, tenantID, req.Date, req.StartTime, result.AppointmentID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// respondError транслирует ошибки use case в HTTP статусы и коды контракта
func (h *Handler) respondError(w http.ResponseWriter, tenantID int64, req *ReserveSlotRequest, err error) {
	// SLOT_TAKEN несёт предложение альтернативы, поэтому разбирается
	// через errors.As до общих сентинелов
	var slotTaken *reserveSlot.SlotTakenError
	if errors.As(err, &slotTaken) {
		h.logger.Warn("POST /tenants/{id}/reservations - Slot taken: tenant_id=%d, date=%s, time=%s",
			tenantID, req.Date, req.StartTime)

		resp := SlotTakenResponse{Error: msgSlotTaken, Code: codeSlotTaken}
		if slotTaken.SuggestedTime != nil {
			suggested := slotTaken.SuggestedTime.String()
			resp.SuggestedTime = &suggested
		}
		handlers.RespondJSON(w, http.StatusConflict, resp)
		return
	}

	switch {
	case errors.Is(err, reserveSlot.ErrInvalidInput):
		h.logger.Warn("POST /tenants/{id}/reservations - Invalid input: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, reserveSlot.ErrInvalidDateTime):
		h.logger.Warn("POST /tenants/{id}/reservations - Invalid date/time: tenant_id=%d, date=%s, time=%s",
			tenantID, req.Date, req.StartTime)
		handlers.RespondErrorCode(w, http.StatusBadRequest, codeInvalidDateOrTime, msgInvalidDateTime)

	case errors.Is(err, reserveSlot.ErrSlotProcessing):
		h.logger.Warn("POST /tenants/{id}/reservations - Slot processing: tenant_id=%d, date=%s, time=%s",
			tenantID, req.Date, req.StartTime)
		handlers.RespondErrorCode(w, http.StatusConflict, codeSlotProcessing, msgSlotProcessing)

	case errors.Is(err, reserveSlot.ErrSlotTaken):
		// Страховка: SlotTakenError обрабатывается выше через errors.As
		handlers.RespondErrorCode(w, http.StatusConflict, codeSlotTaken, msgSlotTaken)

	case errors.Is(err, reserveSlot.ErrBlockedDay):
		h.logger.Warn("POST /tenants/{id}/reservations - Blocked day: tenant_id=%d, date=%s", tenantID, req.Date)
		handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, codeBlockedDay, msgBlockedDay)

	case errors.Is(err, reserveSlot.ErrClosedDay):
		h.logger.Warn("POST /tenants/{id}/reservations - Closed day: tenant_id=%d, date=%s", tenantID, req.Date)
		handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, codeClosedDay, msgClosedDay)

	case errors.Is(err, reserveSlot.ErrNoSchedule):
		h.logger.Warn("POST /tenants/{id}/reservations - No schedule: tenant_id=%d", tenantID)
		handlers.RespondErrorCode(w, http.StatusUnprocessableEntity, codeNoSchedule, msgNoSchedule)

	default:
		h.logger.Error("POST /tenants/{id}/reservations - Failed to reserve slot: tenant_id=%d, date=%s, time=%s, error=%v",
			tenantID, req.Date, req.StartTime, err)
		handlers.RespondInternalError(w)
	}
}
