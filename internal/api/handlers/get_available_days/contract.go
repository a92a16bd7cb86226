package get_available_days

import (
	"context"

	"github.com/m04kA/DPL-BookingService/internal/service/availabledays/models"
)

type AvailableDaysService interface {
	List(ctx context.Context) (*models.DayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
