package get_available_days

import (
	"net/http"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
)

type Handler struct {
	service AvailableDaysService
	logger  Logger
}

func NewHandler(service AvailableDaysService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/available-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/available-days - Failed to list days: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/available-days - Days retrieved successfully: count=%d", len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, result)
}
