// Package analytics implements the interaction counters, the summary
// reporting queries and the listing-expiry sweep. Counters are best-effort:
// they are dispatched fire-and-forget from request middleware and never fail
// the request that triggered them.
package analytics

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// TopListingLimit caps the ranked listing report.
const TopListingLimit = 10

// SortBy selects the ordering of the top-listings report.
type SortBy int

const (
	// SortByViews orders by aggregated views, descending. Default.
	SortByViews SortBy = iota
	// SortByRecency orders by listing creation time, newest first.
	SortByRecency
)

// ErrBadSortKey is returned when a sort query parameter is not recognized.
var ErrBadSortKey = errors.New("unknown sort key")

// ParseSortBy maps the query-string sort parameter onto the closed enum.
func ParseSortBy(s string) (SortBy, error) {
	switch s {
	case "", "views":
		return SortByViews, nil
	case "date":
		return SortByRecency, nil
	default:
		return 0, ErrBadSortKey
	}
}

// TopListing is one row of the ranked report: a listing joined with its
// aggregated view count over the queried range.
type TopListing struct {
	ListingID uint      `json:"listing_id"`
	Views     int64     `json:"views"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// BucketStore is the persistence surface for the per-day counter buckets.
// Implementations must make each operation atomic on its own; no
// cross-operation transaction is assumed.
type BucketStore interface {
	// IncrementVisits adds one site-wide visit to the bucket for day,
	// creating the bucket with a count of one when absent.
	IncrementVisits(ctx context.Context, day time.Time) error
	// IncrementListingViews adds one view to the existing interaction entry
	// for listingID on day. It reports false when no entry matched, without
	// creating one.
	IncrementListingViews(ctx context.Context, day time.Time, listingID uint) (bool, error)
	// AppendListingViews records a fresh interaction entry {listingID, 1} for
	// day, creating the day bucket when absent.
	AppendListingViews(ctx context.Context, day time.Time, listingID uint) error
	// SumVisits totals visits across buckets in the inclusive range; a nil
	// bound is unbounded on that side.
	SumVisits(ctx context.Context, from, to *time.Time) (int64, error)
	// TopListings aggregates per-listing views over the range, joined with
	// listing metadata. Listings that no longer exist are dropped.
	TopListings(ctx context.Context, from, to *time.Time, order SortBy, limit int) ([]TopListing, error)
}

// ListingDirectory is the narrow slice of the listing collaborator this
// subsystem is allowed to touch.
type ListingDirectory interface {
	IncrementViewCount(ctx context.Context, listingID uint) error
	BulkDeactivateExpired(ctx context.Context, now time.Time) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// ServiceDirectory exposes the service-catalog collaborator, read-only.
type ServiceDirectory interface {
	CountActive(ctx context.Context) (int64, error)
}

// StartOfDay truncates t to midnight of its calendar day, the bucket key
// granularity.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay extends t to the last representable instant of its calendar day,
// so an end bound of "2025-01-02" still covers that whole day. Computed from
// the next calendar midnight rather than a fixed 24h, which keeps the bound
// inside the same day across DST transitions.
func EndOfDay(t time.Time) time.Time {
	next := time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
	return next.Add(-time.Nanosecond)
}

// ParseListingID validates the identifier shape of a path parameter. Valid
// ids are positive integers.
func ParseListingID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("listing id must be positive")
	}
	return uint(id), nil
}
