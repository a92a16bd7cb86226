package cleanup

import (
	"net/http"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
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

// Handle POST /api/v1/admin/cleanup
// Явный запуск очистки просроченных pending-записей
// Тот же sweep выполняется лениво перед каждым чтением занятости,
// endpoint нужен для ручного и фонового запуска
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SweepExpired(r.Context())
	if err != nil {
		h.logger.Error("POST /admin/cleanup - Failed to sweep expired appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /admin/cleanup - Sweep completed: deleted=%d", result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, result)
}
