package get_admin_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
	appointmentsService "github.com/m04kA/DPL-BookingService/internal/service/appointments"
	"github.com/m04kA/DPL-BookingService/internal/service/appointments/models"
)

const msgInvalidParams = "некорректные параметры фильтрации"

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

// Handle GET /api/v1/admin/appointments
// Query params: date (optional, YYYY-MM-DD), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListAppointmentsRequest{}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		req.Date = &dateStr
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid params: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Appointments retrieved successfully: count=%d",
		len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
