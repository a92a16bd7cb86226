package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_IsOccupying(t *testing.T) {
	createdAt := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status AppointmentStatus
		now    time.Time
		want   bool
	}{
		{
			name:   "confirmed всегда занимает слот",
			status: StatusConfirmed,
			now:    createdAt.Add(72 * time.Hour),
			want:   true,
		},
		{
			name:   "свежий pending занимает слот",
			status: StatusPending,
			now:    createdAt.Add(5 * time.Minute),
			want:   true,
		},
		{
			name:   "pending ровно на границе периода ожидания занимает слот",
			status: StatusPending,
			now:    createdAt.Add(PendingGracePeriod),
			want:   true,
		},
		{
			name:   "pending сразу за границей не занимает слот",
			status: StatusPending,
			now:    createdAt.Add(PendingGracePeriod + time.Second),
			want:   false,
		},
		{
			name:   "cancelled не занимает слот",
			status: StatusCancelled,
			now:    createdAt,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apt := &Appointment{Status: tt.status, CreatedAt: createdAt}
			assert.Equal(t, tt.want, apt.IsOccupying(tt.now))
		})
	}
}

func TestAppointment_IsExpired(t *testing.T) {
	createdAt := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	apt := &Appointment{Status: StatusPending, CreatedAt: createdAt}
	assert.False(t, apt.IsExpired(createdAt.Add(PendingGracePeriod)))
	assert.True(t, apt.IsExpired(createdAt.Add(PendingGracePeriod+time.Second)))

	confirmed := &Appointment{Status: StatusConfirmed, CreatedAt: createdAt}
	assert.False(t, confirmed.IsExpired(createdAt.Add(24*time.Hour)))
}

func TestAppointment_StartAt(t *testing.T) {
	apt := &Appointment{
		AppointmentDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:30",
	}

	startAt, err := apt.StartAt()
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC), startAt)
}

func TestTimeWindow_IsUsable(t *testing.T) {
	assert.True(t, TimeWindow{Start: "09:00", End: "18:00", IsAvailable: true}.IsUsable())
	assert.False(t, TimeWindow{Start: "09:00", End: "18:00", IsAvailable: false}.IsUsable())
	assert.False(t, TimeWindow{Start: "18:00", End: "09:00", IsAvailable: true}.IsUsable())
	assert.False(t, TimeWindow{Start: "10:00", End: "10:00", IsAvailable: true}.IsUsable())
}
