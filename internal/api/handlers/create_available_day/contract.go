package create_available_day

import (
	"context"

	"github.com/m04kA/DPL-BookingService/internal/service/availabledays/models"
)

type AvailableDaysService interface {
	Create(ctx context.Context, req *models.CreateDayRequest) (*models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
