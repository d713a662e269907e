package service

import (
	"sort"

	"smartparking/internal/entities"
)

// MaxSuggestions is the size of the "Recommended for You" list.
const MaxSuggestions = 3

// SuggestionScore ranks a lot by free capacity weighted by its safety
// rating. Lots without a rating or without capacity score zero.
func SuggestionScore(lot entities.ParkingLot) float64 {
	if lot.TotalSlots <= 0 {
		return 0
	}
	return float64(lot.AvailableSlots) / float64(lot.TotalSlots) * lot.Rating()
}

// Suggest drops full lots, orders the rest by SuggestionScore descending
// (ties keep their input order) and keeps the top MaxSuggestions. The input
// slice is not modified.
func Suggest(lots []entities.ParkingLot) []entities.ParkingLot {
	open := make([]entities.ParkingLot, 0, len(lots))
	for _, lot := range lots {
		if lot.AvailableSlots > 0 {
			open = append(open, lot)
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		return SuggestionScore(open[i]) > SuggestionScore(open[j])
	})

	if len(open) > MaxSuggestions {
		open = open[:MaxSuggestions]
	}
	return open
}
