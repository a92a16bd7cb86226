package update_available_day

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
	availableDaysService "github.com/m04kA/DPL-BookingService/internal/service/availabledays"
	"github.com/m04kA/DPL-BookingService/internal/service/availabledays/models"
)

const (
	msgInvalidDayID       = "некорректный ID дня"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDayNotFound        = "день не найден"
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

// Handle PUT /api/v1/admin/available-days/{dayId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dayIDStr := vars["dayId"]
	dayID, err := strconv.ParseInt(dayIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/available-days/{id} - Invalid day ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayID)
		return
	}

	var req models.UpdateDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/available-days/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), dayID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availableDaysService.ErrInvalidInput):
			h.logger.Warn("PUT /admin/available-days/{id} - Invalid input: day_id=%d, error=%v", dayID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, availableDaysService.ErrDayNotFound):
			h.logger.Warn("PUT /admin/available-days/{id} - Day not found: day_id=%d", dayID)
			handlers.RespondNotFound(w, msgDayNotFound)

		default:
			h.logger.Error("PUT /admin/available-days/{id} - Failed to update day: day_id=%d, error=%v",
				dayID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/available-days/{id} - Day updated successfully: day_id=%d", dayID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
