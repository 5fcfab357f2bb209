package models

import "time"

// Service represents an offered service in the public catalog
// (document assistance, form filling and the like).
type Service struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	AuthorID          uint      `gorm:"index;not null" json:"author_id"`
	Name              string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	DocumentsRequired string    `gorm:"type:text" json:"documents_required"`
	Fees              string    `gorm:"size:128;default:'N/A'" json:"fees"`
	ProcessingTime    string    `gorm:"size:128" json:"processing_time"`
	IsActive          bool      `gorm:"index;default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
