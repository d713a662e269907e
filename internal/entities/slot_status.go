package entities

// SlotStatusSnapshot is the AI service's view of a lot's occupancy, as
// returned by detect-slots and the per-lot slot status endpoint.
type SlotStatusSnapshot struct {
	ParkingLotID   int        `json:"parking_lot_id"`
	TotalSlots     int        `json:"total_slots"`
	AvailableSlots int        `json:"available_slots"`
	OccupiedSlots  int        `json:"occupied_slots"`
	OccupancyRate  float64    `json:"occupancy_rate,omitempty"`
	Timestamp      *Timestamp `json:"timestamp,omitempty"`
	Error          string     `json:"error,omitempty"`
}

// LiveUpdate is the frame pushed to live slot feed subscribers.
type LiveUpdate struct {
	Type string `json:"type"`
	SlotStatusSnapshot
}
