package memory

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// TrackingNumberGenerator issues prefix + YYYYMMDD + a six digit sequence.
// The sequence is process-wide and never resets, so numbers stay unique
// across days within one process.
type TrackingNumberGenerator struct {
	prefix string
	seq    atomic.Int64
	now    func() time.Time
}

// NewTrackingNumberGenerator numbers shipments from 1 for the life of the
// process.
func NewTrackingNumberGenerator(prefix string) *TrackingNumberGenerator {
	return &TrackingNumberGenerator{prefix: prefix, now: time.Now}
}

// Next returns prefix, the UTC date and a six digit counter.
func (g *TrackingNumberGenerator) Next(_ context.Context) (string, error) {
	n := g.seq.Add(1)
	return fmt.Sprintf("%s%s%06d", g.prefix, g.now().UTC().Format("20060102"), n), nil
}
