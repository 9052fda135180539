package utils

import "math"

// FiniteCoordinates reports whether both components are finite numbers.
// This is the gate every navigation runs before mutating any session state.
func FiniteCoordinates(lat, lng float64) bool {
	return !math.IsNaN(lat) && !math.IsInf(lat, 0) &&
		!math.IsNaN(lng) && !math.IsInf(lng, 0)
}

// ValidateCoordinates checks if latitude and longitude are valid
// Latitude must be between -90 and 90
// Longitude must be between -180 and 180
func ValidateCoordinates(lat, lng float64) bool {
	return FiniteCoordinates(lat, lng) &&
		lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// HasValidCoordinates additionally rejects the (0,0) pair, which in model
// output almost always indicates missing data rather than the Gulf of Guinea.
func HasValidCoordinates(lat, lng float64) bool {
	if lat == 0 && lng == 0 {
		return false
	}
	return ValidateCoordinates(lat, lng)
}
