package utils

import (
	"math"
	"time"
)

// Nights counts billable nights between two dates, rounded to the nearest
// whole night and never below one.
func Nights(checkin, checkout time.Time) int {
	n := int(math.Round(checkout.Sub(checkin).Hours() / 24))
	if n < 1 {
		return 1
	}
	return n
}

// HotelTotal is price per night × nights × guests.
func HotelTotal(pricePerNight float64, checkin, checkout time.Time, guests int) float64 {
	return RoundMoney(pricePerNight * float64(Nights(checkin, checkout)) * float64(guests))
}

// CabFare is rate per km × distance, rounded to a whole currency unit.
func CabFare(ratePerKm, distanceKm float64) float64 {
	return math.Round(ratePerKm * distanceKm)
}
