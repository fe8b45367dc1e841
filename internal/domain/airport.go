package domain

// Airport is a destination the fleet can serve. Latitude/Longitude are
// required for any distance computation; an airport without coordinates
// cannot be routed to.
type Airport struct {
	Code      string
	Name      string
	Location  string
	Latitude  *float64
	Longitude *float64
}

func (a *Airport) HasCoordinates() bool {
	return a != nil && a.Latitude != nil && a.Longitude != nil
}
