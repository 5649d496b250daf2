package discovery

import "github.com/campusevents/backend/internal/model"

// RemainingCapacity derives the number of open seats from the stored
// counters, floored at zero. It is computed on every read and never
// persisted, so it always reflects the counters at the instant of the read.
func RemainingCapacity(e *model.Event) int {
	remaining := e.Capacity - e.RegisteredCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsAvailable reports whether the event still has open seats.
func IsAvailable(e *model.Event) bool {
	return RemainingCapacity(e) > 0
}
