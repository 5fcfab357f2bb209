package analytics

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// SummaryOptions carries the parsed query parameters of a summary request.
// Nil date bounds mean unbounded on that side; EndDate is extended to the end
// of its day so the range is inclusive.
type SummaryOptions struct {
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    SortBy
}

// DateRange echoes the queried range back to the dashboard, "all" when a
// bound was absent.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Summary is the admin-dashboard report.
type Summary struct {
	TotalVisits        int64        `json:"total_visits"`
	TopListings        []TopListing `json:"top_listings"`
	ActiveListingCount int64        `json:"active_listing_count"`
	ActiveServiceCount int64        `json:"active_service_count"`
	DateRange          DateRange    `json:"date_range"`
}

// Reporter answers summary queries over the counter buckets joined with
// listing metadata.
type Reporter struct {
	buckets  BucketStore
	listings ListingDirectory
	services ServiceDirectory
	log      *zap.SugaredLogger
}

// NewReporter creates a Reporter over the given stores.
func NewReporter(buckets BucketStore, listings ListingDirectory, services ServiceDirectory, log *zap.SugaredLogger) *Reporter {
	return &Reporter{buckets: buckets, listings: listings, services: services, log: log}
}

// Summary computes total visits and the top listings for the range, plus the
// active listing/service counts. Absence of data yields zeros, not an error;
// storage failures on the counter queries propagate to the caller.
func (r *Reporter) Summary(ctx context.Context, opts SummaryOptions) (*Summary, error) {
	from := opts.StartDate
	var to *time.Time
	if opts.EndDate != nil {
		end := EndOfDay(*opts.EndDate)
		to = &end
	}

	totalVisits, err := r.buckets.SumVisits(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum visits: %w", err)
	}

	top, err := r.buckets.TopListings(ctx, from, to, opts.SortBy, TopListingLimit)
	if err != nil {
		return nil, fmt.Errorf("top listings: %w", err)
	}
	if top == nil {
		top = []TopListing{}
	}

	// Collaborator counts fall back to zero instead of failing the whole report.
	activeListings, err := r.listings.CountActive(ctx)
	if err != nil {
		r.log.Warnf("active listing count failed: %v", err)
		activeListings = 0
	}
	activeServices, err := r.services.CountActive(ctx)
	if err != nil {
		r.log.Warnf("active service count failed: %v", err)
		activeServices = 0
	}

	return &Summary{
		TotalVisits:        totalVisits,
		TopListings:        top,
		ActiveListingCount: activeListings,
		ActiveServiceCount: activeServices,
		DateRange: DateRange{
			StartDate: formatBound(opts.StartDate),
			EndDate:   formatBound(opts.EndDate),
		},
	}, nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "all"
	}
	return t.Format("2006-01-02")
}
