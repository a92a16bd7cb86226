package update_available_day

import (
	"context"

	"github.com/m04kA/DPL-BookingService/internal/service/availabledays/models"
)

type AvailableDaysService interface {
	Update(ctx context.Context, id int64, req *models.UpdateDayRequest) (*models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
