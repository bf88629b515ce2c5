package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/middleware"
	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/utils"
)

// PatientHandler handles patient management for the session clinic.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// UpsertPatientRequest represents the request body for creating or updating
// a patient. A present ID selects the update path.
type UpsertPatientRequest struct {
	ID          string `json:"id" binding:"omitempty,uuid"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required,min=10"`
	Gender      string `json:"gender" binding:"required,oneof=male female"`
}

// UpsertPatient creates a patient or updates one owned by the session clinic.
func (h *PatientHandler) UpsertPatient(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var req UpsertPatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.ID != "" {
		var patient models.Patient
		if err := h.DB.First(&patient, "id = ?", req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.NotFound(c, "Patient not found")
			} else {
				utils.InternalServerError(c, "Database error: "+err.Error())
			}
			return
		}
		if err := models.AssertOwned(&patient, clinicID); err != nil {
			utils.NotFound(c, "Patient not found")
			return
		}

		patient.Name = req.Name
		patient.Email = req.Email
		patient.PhoneNumber = req.PhoneNumber
		patient.Gender = models.Gender(req.Gender)

		if err := h.DB.Save(&patient).Error; err != nil {
			utils.InternalServerError(c, "Failed to update patient: "+err.Error())
			return
		}

		utils.Success(c, "Patient updated successfully", patient)
		return
	}

	patient := models.Patient{
		ClinicID:    clinicID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Gender:      models.Gender(req.Gender),
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	utils.Created(c, "Patient created successfully", patient)
}

// GetPatients lists the session clinic's patients.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var patients []models.Patient
	if err := h.DB.Where("clinic_id = ?", clinicID).Order("name asc").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	utils.Success(c, "Patients fetched successfully", patients)
}

// GetPatientByID fetches one patient owned by the session clinic.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if err := models.AssertOwned(&patient, clinicID); err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	utils.Success(c, "Patient fetched successfully", patient)
}

// DeletePatient removes a patient owned by the session clinic.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if err := models.AssertOwned(&patient, clinicID); err != nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	if err := h.DB.Delete(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient deleted successfully", nil)
}
