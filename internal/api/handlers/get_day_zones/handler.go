package get_day_zones

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
	availableDaysService "github.com/m04kA/DPL-BookingService/internal/service/availabledays"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDayNotFound = "на выбранную дату запись недоступна"
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

// Handle GET /api/v1/days/{date}/zones
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dateStr := vars["date"]

	result, err := h.service.GetZonesForDate(r.Context(), dateStr)
	if err != nil {
		switch {
		case errors.Is(err, availableDaysService.ErrInvalidInput):
			h.logger.Warn("GET /days/{date}/zones - Invalid date: %s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, availableDaysService.ErrDayNotFound):
			h.logger.Warn("GET /days/{date}/zones - Day not found: date=%s", dateStr)
			handlers.RespondNotFound(w, msgDayNotFound)

		default:
			h.logger.Error("GET /days/{date}/zones - Failed to get zones: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /days/{date}/zones - Zones retrieved successfully: date=%s, zones_count=%d",
		dateStr, len(result.Zones))
	handlers.RespondJSON(w, http.StatusOK, result)
}
