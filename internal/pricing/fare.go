// Package pricing converts flight distance into a per-passenger fare.
package pricing

// RatePerMile is the fixed fare rate in currency units per mile per passenger.
const RatePerMile = 15

// BaseCost returns the per-passenger price for a route of the given
// distance. This is the quoted fare used for booking totals; simulated
// flight revenue additionally factors passenger counts.
func BaseCost(distanceMiles int) int {
	return RatePerMile * distanceMiles
}
