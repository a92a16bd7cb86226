package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/DPL-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDuration = "длительность обязательна"
	msgInvalidDuration = "некорректная длительность, ожидается положительное число минут"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (required, YYYY-MM-DD), duration (required, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	durationStr := r.URL.Query().Get("duration")
	if durationStr == "" {
		h.logger.Warn("GET /available-slots - Missing duration")
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil || duration <= 0 {
		h.logger.Warn("GET /available-slots - Invalid duration: %s", durationStr)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Date:            dateStr,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Invalid date: %s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, duration=%d, error=%v",
				dateStr, duration, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /available-slots - Slots retrieved successfully: date=%s, duration=%d, slots_count=%d",
		dateStr, duration, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
