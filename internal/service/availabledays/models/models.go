package models

import (
	"time"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	"github.com/m04kA/DPL-BookingService/pkg/types"
)

// Request модели

// WindowPayload временное окно в запросе
type WindowPayload struct {
	Start       string `json:"start"` // "09:00"
	End         string `json:"end"`   // "18:00"
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}

// ZonePayload услуга (зона) в запросе
type ZonePayload struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// CreateDayRequest запрос на создание доступного дня
type CreateDayRequest struct {
	Date      string          `json:"date"` // "2025-10-15"
	IsEnabled *bool           `json:"isEnabled,omitempty"`
	Windows   []WindowPayload `json:"windows"`
	Zones     []ZonePayload   `json:"zones"`
}

// UpdateDayRequest запрос на обновление доступного дня
// Полная замена окон и зон: переданные списки заменяют существующие
type UpdateDayRequest struct {
	IsEnabled *bool           `json:"isEnabled,omitempty"`
	Windows   []WindowPayload `json:"windows"`
	Zones     []ZonePayload   `json:"zones"`
}

// Response модели

// WindowResponse временное окно в ответе
type WindowResponse struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	IsAvailable bool   `json:"isAvailable"`
}

// ZoneResponse услуга (зона) в ответе
type ZoneResponse struct {
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// DayResponse ответ с данными доступного дня
type DayResponse struct {
	ID        int64            `json:"id"`
	Date      string           `json:"date"` // "2025-10-15"
	IsEnabled bool             `json:"isEnabled"`
	Windows   []WindowResponse `json:"windows"`
	Zones     []ZoneResponse   `json:"zones"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// DayListResponse ответ со списком доступных дней
type DayListResponse struct {
	Days []DayResponse `json:"days"`
}

// DayZonesResponse ответ со списком услуг на дату (публичный endpoint)
type DayZonesResponse struct {
	Date  string         `json:"date"`
	Zones []ZoneResponse `json:"zones"`
}

// Методы конвертации

// ToDomainDay конвертирует запрос в domain модель.
// Дата должна быть нормализована заранее сервисом.
func (r *CreateDayRequest) ToDomainDay(date time.Time) *domain.AvailableDay {
	isEnabled := true
	if r.IsEnabled != nil {
		isEnabled = *r.IsEnabled
	}

	return &domain.AvailableDay{
		Date:      date,
		IsEnabled: isEnabled,
		Windows:   toDomainWindows(r.Windows),
		Zones:     toDomainZones(r.Zones),
	}
}

// ApplyToDay применяет обновления к существующей domain модели
func (r *UpdateDayRequest) ApplyToDay(day *domain.AvailableDay) {
	if r.IsEnabled != nil {
		day.IsEnabled = *r.IsEnabled
	}
	if r.Windows != nil {
		day.Windows = toDomainWindows(r.Windows)
	}
	if r.Zones != nil {
		day.Zones = toDomainZones(r.Zones)
	}
}

func toDomainWindows(windows []WindowPayload) []domain.TimeWindow {
	result := make([]domain.TimeWindow, len(windows))
	for i, w := range windows {
		isAvailable := true
		if w.IsAvailable != nil {
			isAvailable = *w.IsAvailable
		}
		result[i] = domain.TimeWindow{
			Start:       types.TimeString(w.Start),
			End:         types.TimeString(w.End),
			IsAvailable: isAvailable,
		}
	}
	return result
}

func toDomainZones(zones []ZonePayload) []domain.Zone {
	result := make([]domain.Zone, len(zones))
	for i, z := range zones {
		result[i] = domain.Zone{
			Name:            z.Name,
			Price:           z.Price,
			DurationMinutes: z.DurationMinutes,
		}
	}
	return result
}

// FromDomainDay конвертирует domain модель в DTO
func FromDomainDay(d *domain.AvailableDay) *DayResponse {
	if d == nil {
		return nil
	}

	windows := make([]WindowResponse, len(d.Windows))
	for i, w := range d.Windows {
		windows[i] = WindowResponse{
			Start:       w.Start.String(),
			End:         w.End.String(),
			IsAvailable: w.IsAvailable,
		}
	}

	return &DayResponse{
		ID:        d.ID,
		Date:      d.Date.Format(domain.DateFormat),
		IsEnabled: d.IsEnabled,
		Windows:   windows,
		Zones:     FromDomainZones(d.Zones),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// FromDomainDayList конвертирует список domain моделей в DTO
func FromDomainDayList(days []*domain.AvailableDay) *DayListResponse {
	if days == nil {
		return &DayListResponse{Days: []DayResponse{}}
	}

	resp := &DayListResponse{
		Days: make([]DayResponse, len(days)),
	}
	for i, day := range days {
		if dayResp := FromDomainDay(day); dayResp != nil {
			resp.Days[i] = *dayResp
		}
	}
	return resp
}

// FromDomainZones конвертирует список зон в DTO
func FromDomainZones(zones []domain.Zone) []ZoneResponse {
	result := make([]ZoneResponse, len(zones))
	for i, z := range zones {
		result[i] = ZoneResponse{
			Name:            z.Name,
			Price:           z.Price,
			DurationMinutes: z.DurationMinutes,
		}
	}
	return result
}
