package create_available_day

import (
	"errors"
	"net/http"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
	availableDaysService "github.com/m04kA/DPL-BookingService/internal/service/availabledays"
	"github.com/m04kA/DPL-BookingService/internal/service/availabledays/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDayAlreadyExists   = "день с такой датой уже существует"
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

// Handle POST /api/v1/admin/available-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/available-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, availableDaysService.ErrInvalidInput):
			h.logger.Warn("POST /admin/available-days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, availableDaysService.ErrDayAlreadyExists):
			h.logger.Warn("POST /admin/available-days - Day already exists: date=%s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDayAlreadyExists)

		default:
			h.logger.Error("POST /admin/available-days - Failed to create day: date=%s, error=%v",
				req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/available-days - Day created successfully: id=%d, date=%s",
		result.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
