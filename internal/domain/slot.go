package domain

import "github.com/m04kA/appointy-booking/pkg/types"

// AvailableSlot represents a candidate slot of one date as seen by a requester
type AvailableSlot struct {
	Time  types.SlotLabel
	Open  bool // open in the provider's weekly schedule
	Taken bool // held by a pending or confirmed booking
}

// IsBookable returns true if the slot can be requested
func (s *AvailableSlot) IsBookable() bool {
	return s.Open && !s.Taken
}
