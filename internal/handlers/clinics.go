package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/middleware"
	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/utils"
)

// ClinicHandler handles clinic creation and lookup.
type ClinicHandler struct {
	DB *gorm.DB
}

// NewClinicHandler creates a new ClinicHandler.
func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{DB: db}
}

// CreateClinicRequest represents the request body for creating a clinic.
type CreateClinicRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateClinic creates a clinic and binds the authenticated user to it.
// This is the only clinic-related route that does not require an existing
// clinic binding.
func (h *ClinicHandler) CreateClinic(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateClinicRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	clinic := models.Clinic{Name: req.Name}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&clinic).Error; err != nil {
			return err
		}
		binding := models.UserClinic{UserID: userID, ClinicID: clinic.ID}
		return tx.Create(&binding).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create clinic: "+err.Error())
		return
	}

	utils.Created(c, "Clinic created successfully", clinic)
}

// GetClinic returns the session clinic.
func (h *ClinicHandler) GetClinic(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var clinic models.Clinic
	if err := h.DB.First(&clinic, "id = ?", clinicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Clinic not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Clinic fetched successfully", clinic)
}
