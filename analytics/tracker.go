package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Tracker records visit and view events. Both entry points are side effects
// of serving a public page: they log failures and swallow them so a broken
// counter can never break the page being viewed.
type Tracker struct {
	buckets  BucketStore
	listings ListingDirectory
	log      *zap.SugaredLogger
}

// NewTracker creates a Tracker over the given stores.
func NewTracker(buckets BucketStore, listings ListingDirectory, log *zap.SugaredLogger) *Tracker {
	return &Tracker{buckets: buckets, listings: listings, log: log}
}

// RecordVisit adds one visit to today's bucket, creating it when absent.
// The single upsert keeps concurrent callers from losing increments.
func (t *Tracker) RecordVisit(ctx context.Context) {
	day := StartOfDay(time.Now())
	if err := t.buckets.IncrementVisits(ctx, day); err != nil {
		t.log.Warnf("visit tracking failed for %s: %v", day.Format("2006-01-02"), err)
	}
}

// RecordView adds one view for the listing identified by rawID to today's
// bucket and bumps the listing's all-time counter. A malformed id is a
// silent no-op.
//
// The bucket update is a two-step protocol: first a conditional increment of
// an existing interaction entry, then, when nothing matched, an insert of a
// fresh {listing, 1} entry with the bucket created on demand. Two concurrent
// first views of the same listing can both miss step one and insert twice;
// that duplicate is accepted rather than closed with locking, since the
// aggregation sums across entries anyway.
func (t *Tracker) RecordView(ctx context.Context, rawID string) {
	id, err := ParseListingID(rawID)
	if err != nil {
		t.log.Debugf("view tracking skipped, bad listing id %q: %v", rawID, err)
		return
	}

	// All-time counter, independent of the day bucket. Best effort: the two
	// counters are allowed to diverge when one of the writes fails.
	if err := t.listings.IncrementViewCount(ctx, id); err != nil {
		t.log.Warnf("view count update failed for listing %d: %v", id, err)
	}

	day := StartOfDay(time.Now())
	matched, err := t.buckets.IncrementListingViews(ctx, day, id)
	if err != nil {
		t.log.Warnf("view tracking failed for listing %d: %v", id, err)
		return
	}
	if matched {
		return
	}
	if err := t.buckets.AppendListingViews(ctx, day, id); err != nil {
		t.log.Warnf("view tracking insert failed for listing %d: %v", id, err)
	}
}
