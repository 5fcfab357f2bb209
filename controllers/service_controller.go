package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jansuvidha/noticeboard/models"
	"github.com/jansuvidha/noticeboard/utils"
)

// ServiceController manages the service catalog.
type ServiceController struct {
	db *gorm.DB
}

// NewServiceController creates a new ServiceController instance.
func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{db: db}
}

type serviceRequest struct {
	Name              string `json:"name" binding:"required,min=1"`
	DocumentsRequired string `json:"documents_required"`
	Fees              string `json:"fees"`
	ProcessingTime    string `json:"processing_time"`
	IsActive          *bool  `json:"is_active"`
}

// CreateService allows admins to add a catalog entry.
func (s *ServiceController) CreateService(ctx *gin.Context) {
	var req serviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "name cannot be empty")
		return
	}

	fees := req.Fees
	if fees == "" {
		fees = "N/A"
	}

	service := models.Service{
		AuthorID:          userID,
		Name:              name,
		DocumentsRequired: utils.Sanitize(req.DocumentsRequired),
		Fees:              utils.Sanitize(fees),
		ProcessingTime:    utils.Sanitize(req.ProcessingTime),
		IsActive:          true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := s.db.Create(&service).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to create service")
		return
	}

	utils.InvalidateByPrefix("cache:services:list")
	utils.Success(ctx, gin.H{"service": service})
}

// UpdateService allows admins to edit a catalog entry.
func (s *ServiceController) UpdateService(ctx *gin.Context) {
	id := ctx.Param("id")

	var service models.Service
	if err := s.db.First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40403, "service not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load service")
		return
	}

	var req serviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "name cannot be empty")
		return
	}

	service.Name = name
	service.DocumentsRequired = utils.Sanitize(req.DocumentsRequired)
	if req.Fees != "" {
		service.Fees = utils.Sanitize(req.Fees)
	}
	service.ProcessingTime = utils.Sanitize(req.ProcessingTime)
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := s.db.Save(&service).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to update service")
		return
	}

	utils.InvalidateByPrefix("cache:services:list")
	utils.Success(ctx, gin.H{"service": service})
}

// DeleteService removes a catalog entry.
func (s *ServiceController) DeleteService(ctx *gin.Context) {
	id := ctx.Param("id")

	res := s.db.Delete(&models.Service{}, id)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to delete service")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40403, "service not found")
		return
	}

	utils.InvalidateByPrefix("cache:services:list")
	utils.Success(ctx, gin.H{"deleted": true})
}

// GetService returns a single active catalog entry for the public detail
// page.
func (s *ServiceController) GetService(ctx *gin.Context) {
	id := ctx.Param("id")

	var service models.Service
	if err := s.db.Where("is_active = ?", true).First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40403, "service not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load service")
		return
	}

	utils.Success(ctx, gin.H{"service": service})
}

// ListServices returns all active catalog entries for the public site.
func (s *ServiceController) ListServices(ctx *gin.Context) {
	const cacheKey = "cache:services:list"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	var services []models.Service
	if err := s.db.Where("is_active = ?", true).Order("name ASC").Find(&services).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to list services")
		return
	}

	payload := gin.H{"items": services}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}
