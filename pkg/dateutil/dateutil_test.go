package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DPL-BookingService/pkg/types"
)

func TestNormalizeString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr error
	}{
		{
			name:  "календарная дата",
			input: "2025-10-15",
			want:  time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "ISO строка с временной частью",
			input: "2025-06-25T14:30:00Z",
			want:  time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "ISO строка со смещением",
			input: "2025-06-25T23:30:00-03:00",
			want:  time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "пустая строка",
			input:   "",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "мусор",
			input:   "not-a-date",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "год до нижней границы",
			input:   "1970-01-01",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "перепутан порядок",
			input:   "15-10-2025",
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeString(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeString_SameDayDifferentForms(t *testing.T) {
	a, err := NormalizeString("2025-10-15")
	require.NoError(t, err)

	b, err := NormalizeString("2025-10-15T09:30:00Z")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(time.Date(2025, 10, 15, 18, 45, 12, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), got)

	_, err = Normalize(time.Time{})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = Normalize(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestAt(t *testing.T) {
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	got, err := At(day, types.TimeString("09:30"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC), got)

	// день с ненулевым временем нормализуется перед комбинированием
	got, err = At(time.Date(2025, 10, 15, 18, 0, 0, 0, time.UTC), types.TimeString("09:30"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC), got)

	_, err = At(day, types.TimeString("25:00"))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestHoursUntil(t *testing.T) {
	base := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{
			name:   "ровно 36 часов",
			target: base.Add(36 * time.Hour),
			want:   36,
		},
		{
			name:   "35 часов 59 минут усекается до 35",
			target: base.Add(35*time.Hour + 59*time.Minute),
			want:   35,
		},
		{
			name:   "36 часов 30 минут усекается до 36",
			target: base.Add(36*time.Hour + 30*time.Minute),
			want:   36,
		},
		{
			name:   "target в прошлом",
			target: base.Add(-2 * time.Hour),
			want:   -2,
		},
		{
			name:   "меньше часа",
			target: base.Add(30 * time.Minute),
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HoursUntil(base, tt.target))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2025-10-15", Format(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)))
}
