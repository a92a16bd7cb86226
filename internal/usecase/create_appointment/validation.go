package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	"github.com/m04kA/DPL-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientName == "" || len(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName must be between 1 and %d characters",
			ErrInvalidInput, domain.MaxClientNameLength)
	}

	if req.ClientLastName == "" || len(req.ClientLastName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientLastName must be between 1 and %d characters",
			ErrInvalidInput, domain.MaxClientNameLength)
	}

	if req.ClientPhone == "" || len(req.ClientPhone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: clientPhone must be between 1 and %d characters",
			ErrInvalidInput, domain.MaxPhoneLength)
	}

	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if len(req.SelectedZones) == 0 {
		return fmt.Errorf("%w: at least one zone must be selected", ErrInvalidInput)
	}

	if len(req.SelectedZones) > domain.MaxZonesPerAppointment {
		return fmt.Errorf("%w: at most %d zones can be selected",
			ErrInvalidInput, domain.MaxZonesPerAppointment)
	}

	for _, z := range req.SelectedZones {
		if z.Name == "" || len(z.Name) > domain.MaxZoneNameLength {
			return fmt.Errorf("%w: zone name must be between 1 and %d characters",
				ErrInvalidInput, domain.MaxZoneNameLength)
		}
		if z.Price <= 0 {
			return fmt.Errorf("%w: zone price must be positive", ErrInvalidInput)
		}
		if z.DurationMinutes <= 0 {
			return fmt.Errorf("%w: zone durationMinutes must be positive", ErrInvalidInput)
		}
	}

	return nil
}

// validateDateNotPast проверяет, что дата записи не в прошлом
func validateDateNotPast(date time.Time, now time.Time) error {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(nowDay) {
		return ErrInvalidDate
	}
	return nil
}

// slotFitsWindows проверяет, что слот [start, end) целиком помещается
// хотя бы в одно рабочее окно дня
func slotFitsWindows(start, end types.TimeString, windows []domain.TimeWindow) bool {
	for _, w := range windows {
		if !w.IsUsable() {
			continue
		}
		if !start.IsBefore(w.Start) && !end.IsAfter(w.End) {
			return true
		}
	}
	return false
}

// hasConflict проверяет пересечение слота [start, end) с занятыми записями
// Интервалы полуоткрытые: граничащие записи пересечением не считаются
func hasConflict(start, end types.TimeString, occupying []*domain.Appointment) bool {
	for _, apt := range occupying {
		if apt.StartTime.IsBefore(end) && apt.EndTime.IsAfter(start) {
			return true
		}
	}
	return false
}
