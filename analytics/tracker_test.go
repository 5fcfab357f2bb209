package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func TestRecordVisit_CreatesBucketAndCounts(t *testing.T) {
	store := newMemBucketStore()
	tracker := NewTracker(store, newMemListingDirectory(), testLogger())

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		tracker.RecordVisit(ctx)
	}

	today := StartOfDay(time.Now())
	if got := store.visits[dayKey(today)]; got != 3 {
		t.Fatalf("total visits = %d, want 3", got)
	}
	if len(store.visits) != 1 {
		t.Fatalf("bucket count = %d, want 1", len(store.visits))
	}
}

func TestRecordView_FirstViewAppendsSingleEntry(t *testing.T) {
	store := newMemBucketStore()
	dir := newMemListingDirectory()
	dir.listings[1] = &memListing{active: true}
	tracker := NewTracker(store, dir, testLogger())

	tracker.RecordView(context.Background(), "1")

	today := StartOfDay(time.Now())
	entries := store.entriesFor(today, 1)
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1", len(entries))
	}
	if entries[0].views != 1 {
		t.Fatalf("views = %d, want 1", entries[0].views)
	}
}

func TestRecordView_RepeatViewsIncrementInPlace(t *testing.T) {
	store := newMemBucketStore()
	dir := newMemListingDirectory()
	dir.listings[1] = &memListing{active: true}
	tracker := NewTracker(store, dir, testLogger())

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		tracker.RecordView(ctx, "1")
	}

	today := StartOfDay(time.Now())
	entries := store.entriesFor(today, 1)
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1 (no duplicates)", len(entries))
	}
	if entries[0].views != 10 {
		t.Fatalf("views = %d, want 10", entries[0].views)
	}
	if dir.listings[1].viewCount != 10 {
		t.Fatalf("all-time view count = %d, want 10", dir.listings[1].viewCount)
	}
}

func TestRecordView_MalformedIDIsSilentNoOp(t *testing.T) {
	store := newMemBucketStore()
	dir := newMemListingDirectory()
	tracker := NewTracker(store, dir, testLogger())

	ctx := context.Background()
	for _, raw := range []string{"", "abc", "0", "-5", "1.5"} {
		tracker.RecordView(ctx, raw)
	}

	if dir.incCalls != 0 {
		t.Fatalf("view count increments = %d, want 0", dir.incCalls)
	}
	if len(store.interactions) != 0 {
		t.Fatalf("interactions recorded for malformed ids: %v", store.interactions)
	}
}

func TestRecordView_BucketFailureIsSwallowed(t *testing.T) {
	store := newMemBucketStore()
	store.incViewsErr = errors.New("connection reset")
	dir := newMemListingDirectory()
	dir.listings[1] = &memListing{active: true}
	tracker := NewTracker(store, dir, testLogger())

	tracker.RecordView(context.Background(), "1")

	// Step one failed, so step two must not run either.
	if store.appendCalls != 0 {
		t.Fatalf("append calls = %d, want 0 after step-one failure", store.appendCalls)
	}
	// The all-time counter is independent and was already bumped.
	if dir.listings[1].viewCount != 1 {
		t.Fatalf("all-time view count = %d, want 1", dir.listings[1].viewCount)
	}
}

func TestRecordView_ViewCountFailureDoesNotBlockBucket(t *testing.T) {
	store := newMemBucketStore()
	dir := newMemListingDirectory()
	dir.incErr = errors.New("deadlock")
	tracker := NewTracker(store, dir, testLogger())

	tracker.RecordView(context.Background(), "7")

	today := StartOfDay(time.Now())
	if entries := store.entriesFor(today, 7); len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1 despite view-count failure", len(entries))
	}
}

func TestRecordVisit_FailureIsSwallowed(t *testing.T) {
	store := newMemBucketStore()
	store.incVisitsErr = errors.New("timeout")
	tracker := NewTracker(store, newMemListingDirectory(), testLogger())

	// Must not panic and must not propagate anything.
	tracker.RecordVisit(context.Background())
}
