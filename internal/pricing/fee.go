package pricing

// Fee pricing constants, in the same currency-agnostic units as the rest
// of the system.
const (
	BaseFee   = 500.0
	PerKmRate = 100.0
)

// Fee converts a route distance into a delivery fee. Negative distances are
// clamped to zero, so a failed distance lookup (reported as 0 km) yields the
// base fee instead of blocking order placement.
func Fee(distanceKm float64) float64 {
	if distanceKm < 0 {
		distanceKm = 0
	}
	return BaseFee + PerKmRate*distanceKm
}
