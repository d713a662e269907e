package entities

import "time"

type Booking struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	ParkingLotID  int        `json:"parking_lot_id"`
	SlotID        *int       `json:"slot_id,omitempty"`
	StartTime     Timestamp  `json:"start_time"`
	EndTime       *Timestamp `json:"end_time,omitempty"`
	Status        string     `json:"status"`
	VehicleNumber string     `json:"vehicle_number,omitempty"`
	VehicleType   string     `json:"vehicle_type,omitempty"`
	PricePerHour  float64    `json:"price_per_hour,omitempty"`
	TotalPrice    float64    `json:"total_price,omitempty"`
	PaymentStatus string     `json:"payment_status,omitempty"`
	CreatedAt     *Timestamp `json:"created_at,omitempty"`
}

// BookingRequest is the body of POST /api/v1/bookings/. Times are sent as
// UTC ISO-8601.
type BookingRequest struct {
	ParkingLotID  int       `json:"parking_lot_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	VehicleNumber string    `json:"vehicle_number"`
	VehicleType   string    `json:"vehicle_type"`
}

// BookingForm holds the raw values of the booking page form.
type BookingForm struct {
	StartTime     string
	EndTime       string
	VehicleNumber string
	VehicleType   string
}

// Quote is the derived total displayed on the booking page.
type Quote struct {
	Hours int     `json:"hours"`
	Total float64 `json:"total"`
}
