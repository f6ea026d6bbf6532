package ledger

import (
	"time"

	"go.uber.org/zap"

	"github.com/tripsplit-dev/tripsplit/internal/id"
)

// DefaultScale is the minor-unit scale used when none is configured (cents).
const DefaultScale int32 = 2

// Option configures a Ledger.
type Option func(*Ledger)

// WithScale sets the number of fractional digits of the ledger currency's
// minor unit (0 for JPY, 2 for MYR).
func WithScale(scale int32) Option {
	return func(l *Ledger) { l.scale = scale }
}

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(gen id.Generator) Option {
	return func(l *Ledger) { l.newID = gen }
}

// WithClock replaces time.Now for transaction timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithLogger attaches a logger for mutation events.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.log = logger
		}
	}
}
