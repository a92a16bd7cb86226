package domain

import "github.com/m04kA/DPL-BookingService/pkg/types"

// Slot represents a candidate bookable time interval [Start, End)
type Slot struct {
	Start types.TimeString
	End   types.TimeString
}
