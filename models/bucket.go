package models

import "time"

// DailyBucket stores the site-wide visit counter for one local calendar day.
// Exactly one row exists per date; all mutation goes through atomic upserts
// so counters only ever move up within a day.
type DailyBucket struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Date        time.Time `gorm:"uniqueIndex;type:date;not null" json:"date"`
	TotalVisits int64     `gorm:"not null;default:0" json:"total_visits"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BucketInteraction stores per-listing view counts for one day, one row per
// (date, listing) pair under normal operation.
//
// The composite index is intentionally not unique: two concurrent first views
// of the same listing on the same day can both miss the conditional increment
// and each insert a row. That duplicate is an accepted consistency gap of the
// best-effort counting design; aggregation sums across rows, so totals stay
// correct.
type BucketInteraction struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BucketDate time.Time `gorm:"index:idx_interaction_date_listing;type:date;not null" json:"bucket_date"`
	ListingID  uint      `gorm:"index:idx_interaction_date_listing;index;not null" json:"listing_id"`
	Views      int64     `gorm:"not null;default:0" json:"views"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
