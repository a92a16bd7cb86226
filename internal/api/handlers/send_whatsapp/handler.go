package send_whatsapp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
	appointmentsService "github.com/m04kA/DPL-BookingService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgNotFound             = "запись не найдена"
	msgWhatsAppDisabled     = "отправка WhatsApp отключена"
	msgSendFailed           = "не удалось отправить сообщение"
)

// SendResponse ответ на запрос отправки подтверждения
type SendResponse struct {
	Sent bool `json:"sent"`
}

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

// Handle POST /api/v1/admin/appointments/{appointmentId}/whatsapp
// Повторная отправка WhatsApp-подтверждения клиенту
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointmentIDStr := vars["appointmentId"]
	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/appointments/{id}/whatsapp - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if err := h.service.SendConfirmation(r.Context(), appointmentID); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("POST /admin/appointments/{id}/whatsapp - Appointment not found: appointment_id=%d",
				appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointmentsService.ErrWhatsAppDisabled):
			h.logger.Warn("POST /admin/appointments/{id}/whatsapp - WhatsApp disabled: appointment_id=%d",
				appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgWhatsAppDisabled)

		case errors.Is(err, appointmentsService.ErrWhatsAppFailed):
			h.logger.Error("POST /admin/appointments/{id}/whatsapp - Send failed: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgSendFailed)

		default:
			h.logger.Error("POST /admin/appointments/{id}/whatsapp - Failed: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/appointments/{id}/whatsapp - Confirmation sent: appointment_id=%d", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, SendResponse{Sent: true})
}
