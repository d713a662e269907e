package utils

import "strings"

const DefaultVehicleType = "car"

// VehicleTypes are the choices offered by the booking form, in display order.
var VehicleTypes = []VehicleType{
	{Value: "car", Label: "Car"},
	{Value: "bike", Label: "Bike"},
	{Value: "suv", Label: "SUV"},
	{Value: "truck", Label: "Truck"},
}

type VehicleType struct {
	Value string
	Label string
}

func IsVehicleType(value string) bool {
	v := strings.ToLower(value)
	for _, vt := range VehicleTypes {
		if vt.Value == v {
			return true
		}
	}
	return false
}
