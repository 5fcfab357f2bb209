package models

import "time"

// ListingCategories enumerates the allowed listing categories.
var ListingCategories = []string{"भरती", "ऑनलाईन अर्ज", "स्पर्धा परीक्षा", "निकाल", "इतर"}

// Listing represents a job/notice posting shown on the public board.
// ViewCount and IsActive are the only fields the analytics subsystem writes:
// ViewCount is a denormalized all-time view counter incremented alongside the
// per-day bucket, and IsActive flips to false exactly once when the expiry
// sweep finds LastDate in the past.
type Listing struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	AuthorID          uint       `gorm:"index;not null" json:"author_id"`
	Title             string     `gorm:"size:255;not null" json:"title"`
	PostName          string     `gorm:"size:255;not null" json:"post_name"`
	Category          string     `gorm:"size:64;default:'इतर'" json:"category"`
	Qualifications    string     `gorm:"type:text" json:"qualifications"`
	AgeLimit          string     `gorm:"size:128" json:"age_limit"`
	Fees              string     `gorm:"size:128" json:"fees"`
	DocumentsRequired string     `gorm:"type:text" json:"documents_required"`
	Source            string     `gorm:"size:512" json:"source"`
	StartDate         *time.Time `json:"start_date"`
	LastDate          time.Time  `gorm:"index;not null" json:"last_date"`
	IsActive          bool       `gorm:"index;default:true" json:"is_active"`
	ViewCount         int64      `gorm:"not null;default:0" json:"view_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Author            User       `gorm:"foreignKey:AuthorID" json:"-"`
}

// IsValidCategory reports whether the given category is one of the allowed set.
func IsValidCategory(category string) bool {
	for _, c := range ListingCategories {
		if category == c {
			return true
		}
	}
	return false
}
