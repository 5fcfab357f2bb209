package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jansuvidha/noticeboard/models"
)

// GormBucketStore persists counter buckets in MySQL. Every mutation is a
// single atomic statement so concurrent callers never lose updates.
type GormBucketStore struct {
	db *gorm.DB
}

// NewGormBucketStore creates a bucket store over the given connection.
func NewGormBucketStore(db *gorm.DB) *GormBucketStore {
	return &GormBucketStore{db: db}
}

// IncrementVisits upserts the day bucket: insert {day, 1} or bump the
// existing counter in place.
func (s *GormBucketStore) IncrementVisits(ctx context.Context, day time.Time) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_visits": gorm.Expr("total_visits + 1"),
			"updated_at":   time.Now(),
		}),
	}).Create(&models.DailyBucket{Date: day, TotalVisits: 1}).Error
}

// IncrementListingViews is step one of the two-step view protocol: bump the
// interaction row matching (day, listing) when it already exists.
func (s *GormBucketStore) IncrementListingViews(ctx context.Context, day time.Time, listingID uint) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.BucketInteraction{}).
		Where("bucket_date = ? AND listing_id = ?", day, listingID).
		UpdateColumns(map[string]interface{}{
			"views":      gorm.Expr("views + 1"),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AppendListingViews is step two: make sure the day bucket exists (the visit
// counter may not have seen this day yet) and insert a fresh interaction row.
// There is no uniqueness guard on (bucket_date, listing_id), so two racing
// first views can both land here and insert twice; see models.BucketInteraction.
func (s *GormBucketStore) AppendListingViews(ctx context.Context, day time.Time, listingID uint) error {
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(&models.DailyBucket{Date: day}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(&models.BucketInteraction{
		BucketDate: day,
		ListingID:  listingID,
		Views:      1,
	}).Error
}

// SumVisits totals the site-wide counter over the inclusive range.
func (s *GormBucketStore) SumVisits(ctx context.Context, from, to *time.Time) (int64, error) {
	q := s.db.WithContext(ctx).Model(&models.DailyBucket{})
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	var total int64
	err := q.Select("COALESCE(SUM(total_visits),0)").Scan(&total).Error
	return total, err
}

// TopListings groups interaction rows by listing over the range and joins the
// listing metadata. The inner join drops listings that were deleted since
// their views were recorded.
func (s *GormBucketStore) TopListings(ctx context.Context, from, to *time.Time, order SortBy, limit int) ([]TopListing, error) {
	q := s.db.WithContext(ctx).Model(&models.BucketInteraction{}).
		Select("bucket_interactions.listing_id AS listing_id, SUM(bucket_interactions.views) AS views, listings.title AS title, listings.created_at AS created_at").
		Joins("JOIN listings ON listings.id = bucket_interactions.listing_id").
		Group("bucket_interactions.listing_id, listings.title, listings.created_at")
	if from != nil {
		q = q.Where("bucket_interactions.bucket_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("bucket_interactions.bucket_date <= ?", *to)
	}
	switch order {
	case SortByRecency:
		q = q.Order("listings.created_at DESC")
	default:
		q = q.Order("views DESC")
	}

	var rows []TopListing
	if err := q.Limit(limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GormListingDirectory implements the narrow listing collaborator surface.
type GormListingDirectory struct {
	db *gorm.DB
}

// NewGormListingDirectory creates a listing directory over the given connection.
func NewGormListingDirectory(db *gorm.DB) *GormListingDirectory {
	return &GormListingDirectory{db: db}
}

// IncrementViewCount bumps the listing's denormalized all-time counter.
// A missing listing affects zero rows and is not an error.
func (d *GormListingDirectory) IncrementViewCount(ctx context.Context, listingID uint) error {
	return d.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", listingID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// BulkDeactivateExpired flips every active listing whose deadline has passed
// to inactive in one statement and reports how many rows changed. The
// is_active guard makes repeated runs no-ops.
func (d *GormListingDirectory) BulkDeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := d.db.WithContext(ctx).Model(&models.Listing{}).
		Where("is_active = ? AND last_date < ?", true, now).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

// CountActive counts currently active listings.
func (d *GormListingDirectory) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&models.Listing{}).
		Where("is_active = ?", true).Count(&n).Error
	return n, err
}

// GormServiceDirectory implements the service-catalog collaborator surface.
type GormServiceDirectory struct {
	db *gorm.DB
}

// NewGormServiceDirectory creates a service directory over the given connection.
func NewGormServiceDirectory(db *gorm.DB) *GormServiceDirectory {
	return &GormServiceDirectory{db: db}
}

// CountActive counts currently active services.
func (d *GormServiceDirectory) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&models.Service{}).
		Where("is_active = ?", true).Count(&n).Error
	return n, err
}
