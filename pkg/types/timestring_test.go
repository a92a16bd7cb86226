package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "valid morning", value: "09:30", wantErr: false},
		{name: "valid midnight", value: "00:00", wantErr: false},
		{name: "valid end of day", value: "23:59", wantErr: false},
		{name: "missing leading zero", value: "9:30", wantErr: true},
		{name: "surrounding whitespace", value: " 9:30", wantErr: true},
		{name: "trailing seconds", value: "09:30:00", wantErr: true},
		{name: "out of range hour", value: "25:00", wantErr: true},
		{name: "out of range minute", value: "10:75", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := TimeString("09:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		minutes int
		want    string
		wantErr bool
	}{
		{name: "within hour", start: "09:30", minutes: 15, want: "09:45"},
		{name: "crosses hour", start: "09:45", minutes: 30, want: "10:15"},
		{name: "exact end of day", start: "23:00", minutes: 60, want: "24:00"},
		{name: "past end of day", start: "23:30", minutes: 60, wantErr: true},
		{name: "zero", start: "10:00", minutes: 0, want: "10:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeString(tt.start).AddMinutes(tt.minutes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTimeOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TimeString(tt.want), got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))

	// "24:00" сравнивается корректно лексикографически
	assert.True(t, TimeString("23:59").IsBefore("24:00"))
	assert.False(t, TimeString("24:00").IsBefore("24:00"))
}

func TestTimeString_At(t *testing.T) {
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	at, err := TimeString("10:30").At(day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC), at)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("18:00:00")))
	assert.Equal(t, TimeString("18:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 10, 15, 11, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("11:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
