package entities

const (
	SlotAvailable = "available"
	SlotOccupied  = "occupied"
	SlotReserved  = "reserved"
)

type ParkingSlot struct {
	ID           int    `json:"id"`
	ParkingLotID int    `json:"parking_lot_id"`
	SlotNumber   string `json:"slot_number"`
	Status       string `json:"status"`
	IsDisabled   bool   `json:"is_disabled,omitempty"`
	IsEVCharging bool   `json:"is_ev_charging,omitempty"`
}

// SlotCounts is the per-status tally shown next to a lot's slot grid.
type SlotCounts struct {
	Available int
	Occupied  int
	Reserved  int
}

func CountSlots(slots []ParkingSlot) SlotCounts {
	var c SlotCounts
	for _, s := range slots {
		switch s.Status {
		case SlotAvailable:
			c.Available++
		case SlotOccupied:
			c.Occupied++
		case SlotReserved:
			c.Reserved++
		}
	}
	return c
}
