package cancel_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
	appointmentsService "github.com/m04kA/DPL-BookingService/internal/service/appointments"
	"github.com/m04kA/DPL-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgNotFound             = "запись не найдена"
	msgCannotCancel         = "запись не может быть отменена"
	msgCancellationWindow   = "отмена возможна не позднее чем за 36 часов до начала"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentIDStr := vars["appointmentId"]
	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Тело с причиной отмены опционально
	var req models.CancelAppointmentRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /admin/appointments/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.Cancel(r.Context(), appointmentID, &req)
	if err != nil {
		var windowErr *appointmentsService.CancellationWindowError
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("POST /admin/appointments/{id}/cancel - Appointment not found: appointment_id=%d",
				appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointmentsService.ErrCannotCancel):
			h.logger.Warn("POST /admin/appointments/{id}/cancel - Cannot cancel: appointment_id=%d",
				appointmentID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.As(err, &windowErr):
			h.logger.Warn("POST /admin/appointments/{id}/cancel - Cancellation window passed: appointment_id=%d, hours=%d",
				appointmentID, windowErr.HoursRemaining)
			handlers.RespondJSON(w, http.StatusBadRequest, CancellationWindowResponse{
				Error:           msgCancellationWindow,
				HoursRemaining:  windowErr.HoursRemaining,
				MinimumRequired: windowErr.MinimumRequired,
			})

		default:
			h.logger.Error("POST /admin/appointments/{id}/cancel - Failed to cancel: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/appointments/{id}/cancel - Appointment cancelled successfully: appointment_id=%d",
		appointmentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
