package domain

import "time"

// Booking is a ticket held by a passenger for a route on a given date.
// Records are deleted on cancellation; the only mutation is a reschedule
// that moves the date of flight.
type Booking struct {
	TicketID     int64
	Passenger    string
	Dep          string
	Arv          string
	DateOfFlight time.Time
	Cost         float64
}
