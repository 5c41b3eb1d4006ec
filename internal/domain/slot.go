package domain

import "time"

// Slot represents a bookable time interval [Start, End)
// StaffID is nil while capacity is accounted as a fungible pool across the
// weekday's windows; a per-resource mode would fill it
type Slot struct {
	Start   time.Time
	End     time.Time
	StaffID *string
}

// Duration returns the slot length
func (s *Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}
