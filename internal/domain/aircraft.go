package domain

const AircraftStatusAvailable = "Available"

// Aircraft is a fleet entry. Read-only to the ledger core; mutated only
// by fleet management outside this service.
type Aircraft struct {
	RegNo         string
	Model         string
	Capacity      int
	MaxRangeMiles int
	Status        string
}
