package analytics

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSummary_UnboundedRange(t *testing.T) {
	store := &stubBucketStore{sumResult: 42}
	dir := newMemListingDirectory()
	dir.listings[1] = &memListing{active: true}
	dir.listings[2] = &memListing{active: false}
	services := &memServiceDirectory{active: 3}
	reporter := NewReporter(store, dir, services, testLogger())

	sum, err := reporter.Summary(context.Background(), SummaryOptions{})
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}

	if store.sumFrom != nil || store.sumTo != nil {
		t.Fatalf("expected unbounded range, got from=%v to=%v", store.sumFrom, store.sumTo)
	}
	if sum.TotalVisits != 42 {
		t.Fatalf("TotalVisits = %d, want 42", sum.TotalVisits)
	}
	if sum.ActiveListingCount != 1 {
		t.Fatalf("ActiveListingCount = %d, want 1", sum.ActiveListingCount)
	}
	if sum.ActiveServiceCount != 3 {
		t.Fatalf("ActiveServiceCount = %d, want 3", sum.ActiveServiceCount)
	}
	if sum.DateRange.StartDate != "all" || sum.DateRange.EndDate != "all" {
		t.Fatalf("DateRange = %+v, want all/all", sum.DateRange)
	}
}

func TestSummary_EndDateCoversWholeDay(t *testing.T) {
	store := &stubBucketStore{}
	reporter := NewReporter(store, newMemListingDirectory(), &memServiceDirectory{}, testLogger())

	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	_, err := reporter.Summary(context.Background(), SummaryOptions{EndDate: &end})
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}

	if store.sumTo == nil {
		t.Fatal("end bound not passed to store")
	}
	if store.sumTo.Day() != 10 || store.sumTo.Hour() != 23 || store.sumTo.Minute() != 59 {
		t.Fatalf("end bound = %v, want end of March 10", store.sumTo)
	}
	if !store.sumTo.After(end) {
		t.Fatalf("end bound %v does not cover the day %v", store.sumTo, end)
	}
}

func TestSummary_TopListingsCappedAtTen(t *testing.T) {
	store := &stubBucketStore{}
	reporter := NewReporter(store, newMemListingDirectory(), &memServiceDirectory{}, testLogger())

	if _, err := reporter.Summary(context.Background(), SummaryOptions{}); err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if store.topLimit != 10 {
		t.Fatalf("top limit = %d, want 10", store.topLimit)
	}
}

func TestSummary_SortOrderPassedThrough(t *testing.T) {
	store := &stubBucketStore{}
	reporter := NewReporter(store, newMemListingDirectory(), &memServiceDirectory{}, testLogger())

	if _, err := reporter.Summary(context.Background(), SummaryOptions{SortBy: SortByRecency}); err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if store.topOrder != SortByRecency {
		t.Fatalf("order = %v, want SortByRecency", store.topOrder)
	}
}

func TestSummary_EmptyDataYieldsZeros(t *testing.T) {
	store := &stubBucketStore{}
	reporter := NewReporter(store, newMemListingDirectory(), &memServiceDirectory{}, testLogger())

	sum, err := reporter.Summary(context.Background(), SummaryOptions{})
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if sum.TotalVisits != 0 {
		t.Fatalf("TotalVisits = %d, want 0", sum.TotalVisits)
	}
	if sum.TopListings == nil || len(sum.TopListings) != 0 {
		t.Fatalf("TopListings = %v, want empty non-nil slice", sum.TopListings)
	}
}

func TestSummary_StoreFailurePropagates(t *testing.T) {
	store := &stubBucketStore{sumErr: errors.New("down")}
	reporter := NewReporter(store, newMemListingDirectory(), &memServiceDirectory{}, testLogger())

	if _, err := reporter.Summary(context.Background(), SummaryOptions{}); err == nil {
		t.Fatal("expected error when the bucket store fails")
	}
}

func TestSummary_CollaboratorFailureFallsBackToZero(t *testing.T) {
	store := &stubBucketStore{sumResult: 7}
	dir := newMemListingDirectory()
	dir.countErr = errors.New("down")
	services := &memServiceDirectory{countErr: errors.New("down")}
	reporter := NewReporter(store, dir, services, testLogger())

	sum, err := reporter.Summary(context.Background(), SummaryOptions{})
	if err != nil {
		t.Fatalf("Summary() error: %v", err)
	}
	if sum.ActiveListingCount != 0 || sum.ActiveServiceCount != 0 {
		t.Fatalf("counts = %d/%d, want 0/0 on collaborator failure", sum.ActiveListingCount, sum.ActiveServiceCount)
	}
	if sum.TotalVisits != 7 {
		t.Fatalf("TotalVisits = %d, want 7", sum.TotalVisits)
	}
}

func TestParseSortBy(t *testing.T) {
	cases := []struct {
		in      string
		want    SortBy
		wantErr bool
	}{
		{"", SortByViews, false},
		{"views", SortByViews, false},
		{"date", SortByRecency, false},
		{"likes", 0, true},
		{"VIEWS", 0, true},
	}
	for _, c := range cases {
		got, err := ParseSortBy(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseSortBy(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSortBy(%q): unexpected error %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseSortBy(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
