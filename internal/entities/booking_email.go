package entities

type BookingEmailData struct {
	UserName           string
	BookingID          int
	LotName            string
	LotAddress         string
	VehicleNumber      string
	VehicleType        string
	StartTimeFormatted string
	EndTimeFormatted   string
	TotalPrice         string
	CurrentYear        int
}
