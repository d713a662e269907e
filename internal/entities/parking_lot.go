package entities

type ParkingLot struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Address        string     `json:"address"`
	City           string     `json:"city"`
	State          string     `json:"state,omitempty"`
	ZipCode        string     `json:"zip_code,omitempty"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	TotalSlots     int        `json:"total_slots"`
	AvailableSlots int        `json:"available_slots"`
	PricePerHour   float64    `json:"price_per_hour"`
	SafetyRating   *float64   `json:"safety_rating,omitempty"`
	TotalReviews   int        `json:"total_reviews,omitempty"`
	Description    string     `json:"description,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      *Timestamp `json:"created_at,omitempty"`
}

// Rating returns the safety rating, or zero when the lot has none.
func (l ParkingLot) Rating() float64 {
	if l.SafetyRating == nil {
		return 0
	}
	return *l.SafetyRating
}

func (l ParkingLot) HasRating() bool {
	return l.SafetyRating != nil && *l.SafetyRating > 0
}
