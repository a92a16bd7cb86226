package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/DPL-BookingService/internal/api/handlers"
	createAppointment "github.com/m04kA/DPL-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartTime    = "некорректное время начала, ожидается формат HH:MM"
	msgInvalidDate         = "некорректная дата записи"
	msgDayNotAvailable     = "выбранная дата недоступна для записи"
	msgOutsideWorkingHours = "выбранное время вне рабочих часов"
	msgSlotConflict        = "выбранное время уже занято"
	msgPaymentProvider     = "не удалось создать платёжную ссылку"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid start time: time=%s, error=%v", req.StartTime, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: %s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDayNotAvailable):
			h.logger.Warn("POST /appointments - Day not available: date=%s", req.Date)
			handlers.RespondError(w, http.StatusConflict, msgDayNotAvailable)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: date=%s, time=%s",
				req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: date=%s, time=%s",
				req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrPaymentProvider):
			h.logger.Error("POST /appointments - Payment provider error: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentProvider)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: id=%d, date=%s, time=%s",
		result.AppointmentID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
