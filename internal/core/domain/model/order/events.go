package order

import "time"

// StatusChanged is recorded by the order on every successful transition.
// Handlers publish the recorded events once the unit of work has committed.
type StatusChanged struct {
	OrderID        string
	From           Status
	To             Status
	TrackingNumber string
	OccurredAt     time.Time
}
