package set_provider_availability

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	Available *bool `json:"available"`
}
