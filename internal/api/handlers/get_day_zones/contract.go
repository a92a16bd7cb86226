package get_day_zones

import (
	"context"

	"github.com/m04kA/DPL-BookingService/internal/service/availabledays/models"
)

type AvailableDaysService interface {
	GetZonesForDate(ctx context.Context, dateStr string) (*models.DayZonesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
