package ports

import "context"

// TrackingNumberGenerator issues shipment tracking numbers. Every number it
// returns is non-empty and never returned again.
type TrackingNumberGenerator interface {
	Next(ctx context.Context) (string, error)
}
