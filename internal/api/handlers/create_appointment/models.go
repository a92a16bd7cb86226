package create_appointment

import (
	"github.com/m04kA/DPL-BookingService/internal/domain"
	createAppointment "github.com/m04kA/DPL-BookingService/internal/usecase/create_appointment"
	"github.com/m04kA/DPL-BookingService/pkg/types"
)

// ZonePayload выбранная зона в HTTP-запросе
type ZonePayload struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientName     string        `json:"clientName"`
	ClientLastName string        `json:"clientLastName"`
	ClientPhone    string        `json:"clientPhone"`
	Date           string        `json:"date"`      // "2025-10-15"
	StartTime      string        `json:"startTime"` // "10:00"
	SelectedZones  []ZonePayload `json:"selectedZones"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	AppointmentID        int64   `json:"appointmentId"`
	Status               string  `json:"status"`
	Date                 string  `json:"date"`
	StartTime            string  `json:"startTime"`
	EndTime              string  `json:"endTime"`
	TotalPrice           float64 `json:"totalPrice"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	DepositAmount        float64 `json:"depositAmount"`
	PreferenceID         string  `json:"preferenceId"`
	InitPoint            string  `json:"initPoint"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case.
// Время начала проверяется на строгий формат HH:MM прямо на границе
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	zones := make([]createAppointment.ZoneInput, len(r.SelectedZones))
	for i, z := range r.SelectedZones {
		zones[i] = createAppointment.ZoneInput{
			Name:            z.Name,
			Price:           z.Price,
			DurationMinutes: z.DurationMinutes,
		}
	}

	return &createAppointment.Request{
		ClientName:     r.ClientName,
		ClientLastName: r.ClientLastName,
		ClientPhone:    r.ClientPhone,
		Date:           r.Date,
		StartTime:      startTime,
		SelectedZones:  zones,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		AppointmentID:        resp.AppointmentID,
		Status:               resp.Status,
		Date:                 resp.AppointmentDate.Format(domain.DateFormat),
		StartTime:            resp.StartTime.String(),
		EndTime:              resp.EndTime.String(),
		TotalPrice:           resp.TotalPrice,
		TotalDurationMinutes: resp.TotalDurationMinutes,
		DepositAmount:        resp.DepositAmount,
		PreferenceID:         resp.PreferenceID,
		InitPoint:            resp.InitPoint,
	}
}
