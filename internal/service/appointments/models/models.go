package models

import (
	"errors"
	"time"

	"github.com/m04kA/DPL-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ListAppointmentsRequest запрос на получение записей с фильтрацией
type ListAppointmentsRequest struct {
	Date   *string `json:"date,omitempty"`   // Конкретная дата "2025-10-15" (опционально)
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// Response модели

// ZoneResponse выбранная зона в составе записи
type ZoneResponse struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64          `json:"id"`
	ClientName      string         `json:"clientName"`
	ClientLastName  string         `json:"clientLastName"`
	ClientPhone     string         `json:"clientPhone"`
	AppointmentDate string         `json:"appointmentDate"` // "2025-10-15"
	StartTime       string         `json:"startTime"`       // "10:00"
	EndTime         string         `json:"endTime"`         // "11:30"
	SelectedZones   []ZoneResponse `json:"selectedZones"`

	TotalPrice           float64 `json:"totalPrice"`
	TotalDurationMinutes int     `json:"totalDurationMinutes"`
	DepositAmount        float64 `json:"depositAmount"`

	Status        string  `json:"status"`
	PaymentID     *string `json:"paymentId,omitempty"`
	PaymentStatus string  `json:"paymentStatus"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format
	HoursInAdvance     *int    `json:"hoursInAdvance,omitempty"`
	RefundEligible     bool    `json:"refundEligible"`

	WhatsAppSent bool `json:"whatsappSent"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// CancellationCheckResponse результат проверки возможности отмены
type CancellationCheckResponse struct {
	CanCancel      bool `json:"canCancel"`
	HoursInAdvance int  `json:"hoursInAdvance"`
	RequiredHours  int  `json:"requiredHours"`
	RefundEligible bool `json:"refundEligible"`
}

// CleanupResponse результат очистки просроченных pending-записей
type CleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	zones := make([]ZoneResponse, len(a.SelectedZones))
	for i, z := range a.SelectedZones {
		zones[i] = ZoneResponse{
			Name:            z.Name,
			Price:           z.Price,
			DurationMinutes: z.DurationMinutes,
		}
	}

	resp := &AppointmentResponse{
		ID:                   a.ID,
		ClientName:           a.ClientName,
		ClientLastName:       a.ClientLastName,
		ClientPhone:          a.ClientPhone,
		AppointmentDate:      a.AppointmentDate.Format(domain.DateFormat),
		StartTime:            a.StartTime.String(),
		EndTime:              a.EndTime.String(),
		SelectedZones:        zones,
		TotalPrice:           a.TotalPrice,
		TotalDurationMinutes: a.TotalDurationMinutes,
		DepositAmount:        a.DepositAmount,
		Status:               string(a.Status),
		PaymentID:            a.PaymentID,
		PaymentStatus:        string(a.PaymentStatus),
		CancellationReason:   a.CancellationReason,
		HoursInAdvance:       a.HoursInAdvance,
		RefundEligible:       a.RefundEligible,
		WhatsAppSent:         a.WhatsAppSent,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, apt := range appointments {
		if aptResp := FromDomainAppointment(apt); aptResp != nil {
			resp.Appointments[i] = *aptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
