package domain

import (
	"time"

	"github.com/m04kA/DPL-BookingService/pkg/types"
)

// TimeWindow is a contiguous booking window within a day (e.g. 09:00-18:00)
type TimeWindow struct {
	Start       types.TimeString
	End         types.TimeString
	IsAvailable bool
}

// IsUsable returns true if the window can produce booking slots.
// A window with start >= end is treated as misconfigured and skipped, not an error.
func (w TimeWindow) IsUsable() bool {
	return w.IsAvailable && w.Start.IsBefore(w.End)
}

// Zone is a service offering configured for a day
type Zone struct {
	Name            string
	Price           float64
	DurationMinutes int
}

// AvailableDay is the admin-configured availability record for one calendar date.
// Exactly one AvailableDay exists per date; disabled days yield no slots
// regardless of configured windows.
type AvailableDay struct {
	ID        int64
	Date      time.Time // normalized to midnight UTC, unique
	IsEnabled bool
	Windows   []TimeWindow
	Zones     []Zone
	CreatedAt time.Time
	UpdatedAt time.Time
}
