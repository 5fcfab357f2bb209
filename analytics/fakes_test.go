package analytics

import (
	"context"
	"sync"
	"time"
)

// memBucketStore mirrors the store semantics in memory: per-day visit
// counters and per-day interaction entry lists, including the "step one
// matches only existing entries" behavior.
type memInteraction struct {
	listingID uint
	views     int64
}

type memBucketStore struct {
	mu           sync.Mutex
	visits       map[string]int64
	interactions map[string][]memInteraction

	incVisitsErr error
	incViewsErr  error
	appendErr    error
	appendCalls  int
}

func newMemBucketStore() *memBucketStore {
	return &memBucketStore{
		visits:       map[string]int64{},
		interactions: map[string][]memInteraction{},
	}
}

func dayKey(day time.Time) string { return day.Format("2006-01-02") }

func (m *memBucketStore) IncrementVisits(ctx context.Context, day time.Time) error {
	if m.incVisitsErr != nil {
		return m.incVisitsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visits[dayKey(day)]++
	return nil
}

func (m *memBucketStore) IncrementListingViews(ctx context.Context, day time.Time, listingID uint) (bool, error) {
	if m.incViewsErr != nil {
		return false, m.incViewsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.interactions[dayKey(day)]
	for i := range entries {
		if entries[i].listingID == listingID {
			entries[i].views++
			return true, nil
		}
	}
	return false, nil
}

func (m *memBucketStore) AppendListingViews(ctx context.Context, day time.Time, listingID uint) error {
	m.mu.Lock()
	m.appendCalls++
	m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := dayKey(day)
	if _, ok := m.visits[key]; !ok {
		m.visits[key] = 0
	}
	m.interactions[key] = append(m.interactions[key], memInteraction{listingID: listingID, views: 1})
	return nil
}

func (m *memBucketStore) SumVisits(ctx context.Context, from, to *time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total int64
	for _, v := range m.visits {
		total += v
	}
	return total, nil
}

func (m *memBucketStore) TopListings(ctx context.Context, from, to *time.Time, order SortBy, limit int) ([]TopListing, error) {
	return nil, nil
}

func (m *memBucketStore) entriesFor(day time.Time, listingID uint) []memInteraction {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []memInteraction
	for _, e := range m.interactions[dayKey(day)] {
		if e.listingID == listingID {
			out = append(out, e)
		}
	}
	return out
}

// memListing is a minimal listing record for directory fakes.
type memListing struct {
	active    bool
	lastDate  time.Time
	viewCount int64
}

type memListingDirectory struct {
	mu       sync.Mutex
	listings map[uint]*memListing

	incErr    error
	deactErr  error
	countErr  error
	incCalls  int
	lastSweep time.Time
}

func newMemListingDirectory() *memListingDirectory {
	return &memListingDirectory{listings: map[uint]*memListing{}}
}

func (d *memListingDirectory) IncrementViewCount(ctx context.Context, listingID uint) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.incCalls++
	if d.incErr != nil {
		return d.incErr
	}
	if l, ok := d.listings[listingID]; ok {
		l.viewCount++
	}
	return nil
}

func (d *memListingDirectory) BulkDeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	if d.deactErr != nil {
		return 0, d.deactErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastSweep = now
	var n int64
	for _, l := range d.listings {
		if l.active && l.lastDate.Before(now) {
			l.active = false
			n++
		}
	}
	return n, nil
}

func (d *memListingDirectory) CountActive(ctx context.Context) (int64, error) {
	if d.countErr != nil {
		return 0, d.countErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	var n int64
	for _, l := range d.listings {
		if l.active {
			n++
		}
	}
	return n, nil
}

type memServiceDirectory struct {
	active   int64
	countErr error
}

func (d *memServiceDirectory) CountActive(ctx context.Context) (int64, error) {
	if d.countErr != nil {
		return 0, d.countErr
	}
	return d.active, nil
}

// stubBucketStore captures query arguments and returns canned report rows,
// for reporter tests.
type stubBucketStore struct {
	sumFrom, sumTo *time.Time
	topFrom, topTo *time.Time
	topOrder       SortBy
	topLimit       int

	sumResult int64
	sumErr    error
	topResult []TopListing
	topErr    error
}

func (s *stubBucketStore) IncrementVisits(ctx context.Context, day time.Time) error {
	return nil
}

func (s *stubBucketStore) IncrementListingViews(ctx context.Context, day time.Time, listingID uint) (bool, error) {
	return false, nil
}

func (s *stubBucketStore) AppendListingViews(ctx context.Context, day time.Time, listingID uint) error {
	return nil
}

func (s *stubBucketStore) SumVisits(ctx context.Context, from, to *time.Time) (int64, error) {
	s.sumFrom, s.sumTo = from, to
	return s.sumResult, s.sumErr
}

func (s *stubBucketStore) TopListings(ctx context.Context, from, to *time.Time, order SortBy, limit int) ([]TopListing, error) {
	s.topFrom, s.topTo = from, to
	s.topOrder = order
	s.topLimit = limit
	return s.topResult, s.topErr
}
