package check_cancellation

import (
	"context"

	"github.com/m04kA/DPL-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	CheckCancellation(ctx context.Context, id int64) (*models.CancellationCheckResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
