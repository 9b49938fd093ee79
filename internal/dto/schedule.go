package dto

// RegenerateAvailabilityRequest tunes the synthesized availability tables.
type RegenerateAvailabilityRequest struct {
	Rate float64 `json:"rate" validate:"required,gt=0,lt=1"`
}
