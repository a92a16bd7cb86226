package create_appointment

import (
	"time"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	"github.com/m04kA/DPL-BookingService/pkg/types"
)

// ZoneInput выбранная клиентом услуга (зона)
type ZoneInput struct {
	Name            string
	Price           float64
	DurationMinutes int
}

// Request модель запроса на создание записи
type Request struct {
	ClientName     string           // Имя клиента
	ClientLastName string           // Фамилия клиента
	ClientPhone    string           // Телефон клиента
	Date           string           // Дата записи в формате "2025-10-15"
	StartTime      types.TimeString // Время начала (например, "10:00")
	SelectedZones  []ZoneInput      // Выбранные зоны
}

// Response модель ответа с созданной записью и платёжной ссылкой
type Response struct {
	AppointmentID        int64            // ID созданной записи
	Status               string           // Статус записи (pending)
	AppointmentDate      time.Time        // Дата записи
	StartTime            types.TimeString // Время начала
	EndTime              types.TimeString // Время окончания
	TotalPrice           float64          // Полная стоимость
	TotalDurationMinutes int              // Суммарная длительность
	DepositAmount        float64          // Сумма предоплаты (50%)
	PreferenceID         string           // ID платёжной преференции
	InitPoint            string           // Ссылка на оплату
}

// toDomainZones конвертирует выбранные зоны в domain модель
func toDomainZones(zones []ZoneInput) []domain.ZoneSelection {
	result := make([]domain.ZoneSelection, len(zones))
	for i, z := range zones {
		result[i] = domain.ZoneSelection{
			Name:            z.Name,
			Price:           z.Price,
			DurationMinutes: z.DurationMinutes,
		}
	}
	return result
}
