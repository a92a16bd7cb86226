package cancel_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmentsService "github.com/m04kA/DPL-BookingService/internal/service/appointments"
	"github.com/m04kA/DPL-BookingService/internal/service/appointments/models"
)

type fakeService struct {
	result *models.AppointmentResponse
	err    error
}

func (f *fakeService) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func doCancel(t *testing.T, svc AppointmentsService) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(svc, nopLogger{})

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/admin/appointments/{appointmentId}/cancel", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/appointments/7/cancel", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_CancellationWindow(t *testing.T) {
	svc := &fakeService{err: &appointmentsService.CancellationWindowError{
		HoursRemaining:  10,
		MinimumRequired: 36,
	}}

	rec := doCancel(t, svc)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body CancellationWindowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 10, body.HoursRemaining)
	assert.Equal(t, 36, body.MinimumRequired)
	assert.Equal(t, msgCancellationWindow, body.Error)
}

func TestHandle_CannotCancel(t *testing.T) {
	rec := doCancel(t, &fakeService{err: appointmentsService.ErrCannotCancel})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_NotFound(t *testing.T) {
	rec := doCancel(t, &fakeService{err: appointmentsService.ErrAppointmentNotFound})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{result: &models.AppointmentResponse{
		ID:     7,
		Status: "cancelled",
	}}

	rec := doCancel(t, svc)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.ID)
	assert.Equal(t, "cancelled", body.Status)
}
