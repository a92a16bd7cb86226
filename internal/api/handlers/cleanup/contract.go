package cleanup

import (
	"context"

	"github.com/m04kA/DPL-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	SweepExpired(ctx context.Context) (*models.CleanupResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
