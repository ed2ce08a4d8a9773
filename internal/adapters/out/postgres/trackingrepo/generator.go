// Package trackingrepo draws tracking numbers from a Postgres sequence so
// they stay unique across every process sharing the database.
package trackingrepo

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SequenceName is the Postgres sequence behind tracking numbers.
const SequenceName = "tracking_number_seq"

// CreateSequence creates the sequence if it does not exist yet.
func CreateSequence(db *gorm.DB) error {
	return db.Exec("CREATE SEQUENCE IF NOT EXISTS " + SequenceName).Error
}

// GormTrackingNumberGenerator implements ports.TrackingNumberGenerator.
// Numbers look like TRK20250912000042: prefix, shipping day and sequence.
type GormTrackingNumberGenerator struct {
	db     *gorm.DB
	prefix string
	now    func() time.Time
}

// NewGormTrackingNumberGenerator draws numbers from the tracking sequence.
func NewGormTrackingNumberGenerator(db *gorm.DB, prefix string) *GormTrackingNumberGenerator {
	return &GormTrackingNumberGenerator{db: db, prefix: prefix, now: time.Now}
}

// Next returns prefix, the UTC date and the next sequence value padded to
// six digits.
func (g *GormTrackingNumberGenerator) Next(ctx context.Context) (string, error) {
	var seq int64
	if err := g.db.WithContext(ctx).Raw("SELECT nextval(?::regclass)", SequenceName).Scan(&seq).Error; err != nil {
		return "", fmt.Errorf("draw tracking number: %w", err)
	}

	return fmt.Sprintf("%s%s%06d", g.prefix, g.now().UTC().Format("20060102"), seq), nil
}
