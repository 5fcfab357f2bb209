package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Sweeper transitions listings from active to inactive once their deadline
// has passed. The transition is one-way; nothing in this subsystem ever
// reactivates a listing.
type Sweeper struct {
	listings ListingDirectory
	log      *zap.SugaredLogger
}

// NewSweeper creates a Sweeper over the given listing directory.
func NewSweeper(listings ListingDirectory, log *zap.SugaredLogger) *Sweeper {
	return &Sweeper{listings: listings, log: log}
}

// SweepExpired deactivates every active listing whose last date is in the
// past, in one bulk update, and returns how many were transitioned. The
// query is scoped to active listings, so running it again immediately is a
// no-op, and the timer and the maintenance endpoint can share it safely.
func (s *Sweeper) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.listings.BulkDeactivateExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("deactivate expired listings: %w", err)
	}
	if n > 0 {
		s.log.Infof("expiry sweep deactivated %d listings", n)
	} else {
		s.log.Debug("expiry sweep found no expired listings")
	}
	return n, nil
}

// Start launches the daily background trigger. It sleeps until the next local
// midnight, runs the sweep, and repeats. Failures are logged and the loop
// keeps going.
func (s *Sweeper) Start() {
	go func() {
		for {
			time.Sleep(untilNextMidnight(time.Now()))
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if _, err := s.SweepExpired(ctx); err != nil {
				s.log.Warnf("scheduled expiry sweep failed: %v", err)
			}
			cancel()
		}
	}()
}

func untilNextMidnight(now time.Time) time.Duration {
	// Calendar arithmetic, not duration addition: a fixed 24h lands at 01:00
	// on the short DST day.
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	d := next.Sub(now)
	if d < time.Second {
		// Guards against firing twice inside the same second at the boundary.
		d = time.Second
	}
	return d
}
