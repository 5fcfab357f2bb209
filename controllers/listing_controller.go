package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jansuvidha/noticeboard/models"
	"github.com/jansuvidha/noticeboard/utils"
)

// ListingController manages CRUD operations for notice-board listings.
// Public reads serve only active listings; the admin panel sees everything.
type ListingController struct {
	db *gorm.DB
}

// NewListingController creates a new ListingController instance.
func NewListingController(db *gorm.DB) *ListingController {
	return &ListingController{db: db}
}

type listingRequest struct {
	Title             string `json:"title" binding:"required,min=1"`
	PostName          string `json:"post_name" binding:"required,min=1"`
	Category          string `json:"category"`
	Qualifications    string `json:"qualifications"`
	AgeLimit          string `json:"age_limit"`
	Fees              string `json:"fees"`
	DocumentsRequired string `json:"documents_required"`
	Source            string `json:"source"`
	StartDate         string `json:"start_date"`
	LastDate          string `json:"last_date" binding:"required"`
}

func (r *listingRequest) apply(listing *models.Listing) (int, string) {
	title := utils.Sanitize(strings.TrimSpace(r.Title))
	if title == "" {
		return 40021, "title cannot be empty"
	}

	category := r.Category
	if category == "" {
		category = "इतर"
	}
	if !models.IsValidCategory(category) {
		return 40022, "invalid category"
	}

	lastDate, err := time.ParseInLocation("2006-01-02", r.LastDate, time.Local)
	if err != nil {
		return 40023, "invalid last_date, expected YYYY-MM-DD"
	}
	// The listing stays live through its last day; the sweep compares
	// against the end of it.
	lastDate = lastDate.Add(24*time.Hour - time.Second)

	var startDate *time.Time
	if r.StartDate != "" {
		sd, err := time.ParseInLocation("2006-01-02", r.StartDate, time.Local)
		if err != nil {
			return 40024, "invalid start_date, expected YYYY-MM-DD"
		}
		startDate = &sd
	}

	listing.Title = title
	listing.PostName = utils.Sanitize(strings.TrimSpace(r.PostName))
	listing.Category = category
	listing.Qualifications = utils.Sanitize(r.Qualifications)
	listing.AgeLimit = utils.Sanitize(r.AgeLimit)
	listing.Fees = utils.Sanitize(r.Fees)
	listing.DocumentsRequired = utils.Sanitize(r.DocumentsRequired)
	listing.Source = utils.Sanitize(strings.TrimSpace(r.Source))
	listing.StartDate = startDate
	listing.LastDate = lastDate
	return 0, ""
}

// CreateListing allows admins to publish a new listing.
func (l *ListingController) CreateListing(ctx *gin.Context) {
	var req listingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	listing := models.Listing{AuthorID: userID, IsActive: true}
	if code, msg := req.apply(&listing); code != 0 {
		utils.Error(ctx, http.StatusBadRequest, code, msg)
		return
	}

	if err := l.db.Create(&listing).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create listing")
		return
	}

	utils.InvalidateByPrefix("cache:listings:")
	utils.Success(ctx, gin.H{"listing": listing})
}

// UpdateListing allows admins to edit an existing listing.
func (l *ListingController) UpdateListing(ctx *gin.Context) {
	id := ctx.Param("id")

	var listing models.Listing
	if err := l.db.First(&listing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40401, "listing not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load listing")
		return
	}

	var req listingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if code, msg := req.apply(&listing); code != 0 {
		utils.Error(ctx, http.StatusBadRequest, code, msg)
		return
	}

	if err := l.db.Save(&listing).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to update listing")
		return
	}

	utils.InvalidateByPrefix("cache:listings:")
	utils.InvalidateByPrefix("cache:listing:detail:" + id)
	utils.Success(ctx, gin.H{"listing": listing})
}

// DeleteListing removes a listing permanently. Its interaction history stays
// in the day buckets but drops out of reports once the join finds no listing.
func (l *ListingController) DeleteListing(ctx *gin.Context) {
	id := ctx.Param("id")

	res := l.db.Delete(&models.Listing{}, id)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to delete listing")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40401, "listing not found")
		return
	}

	utils.InvalidateByPrefix("cache:listings:")
	utils.InvalidateByPrefix("cache:listing:detail:" + id)
	utils.Success(ctx, gin.H{"deleted": true})
}

// ListListings returns paginated active listings for the public board, with
// optional search and category filters. Unfiltered pages are cached.
func (l *ListingController) ListListings(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	search := strings.TrimSpace(ctx.Query("search"))
	category := strings.TrimSpace(ctx.Query("category"))

	// Cache only when there is no search term to avoid cache key explosion.
	cacheKey := fmt.Sprintf("cache:listings:list:cat=%s:page=%d:size=%d", category, page, pageSize)
	if search == "" {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(200, "application/json", b)
			return
		}
	}

	query := l.db.Model(&models.Listing{}).Where("is_active = ?", true).Order("created_at DESC")
	if search != "" {
		query = query.Where("title LIKE ? OR post_name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to count listings")
		return
	}

	var listings []models.Listing
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Find(&listings).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to list listings")
		return
	}

	payload := gin.H{
		"items": listings,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	}
	if search == "" {
		wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
		utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	}
	utils.Success(ctx, payload)
}

// ListExpiredListings returns the public archive: listings past their last
// date or already deactivated, newest expiry first. Cached like the main list.
func (l *ListingController) ListExpiredListings(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	cacheKey := fmt.Sprintf("cache:listings:expired:page=%d:size=%d", page, pageSize)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	query := l.db.Model(&models.Listing{}).
		Where("is_active = ? OR last_date < ?", false, time.Now()).
		Order("last_date DESC")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to count listings")
		return
	}

	var listings []models.Listing
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Find(&listings).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to list listings")
		return
	}

	payload := gin.H{
		"items": listings,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// GetListing returns a single active listing for the public detail page.
func (l *ListingController) GetListing(ctx *gin.Context) {
	id := ctx.Param("id")

	var listing models.Listing
	if err := l.db.Where("is_active = ?", true).First(&listing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40401, "listing not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to load listing")
		return
	}

	utils.Success(ctx, gin.H{"listing": listing})
}

// AdminListListings returns every listing including expired ones, for the
// management screen.
func (l *ListingController) AdminListListings(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	var total int64
	if err := l.db.Model(&models.Listing{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to count listings")
		return
	}

	var listings []models.Listing
	offset := (page - 1) * pageSize
	if err := l.db.Model(&models.Listing{}).Order("created_at DESC").
		Offset(offset).Limit(pageSize).Find(&listings).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to list listings")
		return
	}

	utils.Success(ctx, gin.H{
		"items": listings,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// AdminGetListing returns one listing regardless of status, for the edit form.
func (l *ListingController) AdminGetListing(ctx *gin.Context) {
	id := ctx.Param("id")

	var listing models.Listing
	if err := l.db.First(&listing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40401, "listing not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load listing")
		return
	}

	utils.Success(ctx, gin.H{"listing": listing})
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}
