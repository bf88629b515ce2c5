package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/middleware"
	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/utils"
)

// DoctorHandler handles doctor management for the session clinic.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// UpsertDoctorRequest represents the request body for creating or updating a
// doctor. A present ID selects the update path.
type UpsertDoctorRequest struct {
	ID                      string `json:"id" binding:"omitempty,uuid"`
	Name                    string `json:"name" binding:"required"`
	Speciality              string `json:"speciality" binding:"required"`
	AvailableFromWeekDay    int    `json:"availableFromWeekDay" binding:"min=0,max=6"`
	AvailableToWeekDay      int    `json:"availableToWeekDay" binding:"min=0,max=6"`
	AvailableFromTime       string `json:"availableFromTime" binding:"required,datetime=15:04:05"`
	AvailableToTime         string `json:"availableToTime" binding:"required,datetime=15:04:05"`
	AppointmentPriceInCents int    `json:"appointmentPriceInCents" binding:"required,min=1"`
}

// UpsertDoctor creates a doctor or updates one owned by the session clinic.
func (h *DoctorHandler) UpsertDoctor(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var req UpsertDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	// The daily window is half-open [from, to); an inverted or zero-width
	// window would make the doctor permanently unbookable.
	if req.AvailableToTime <= req.AvailableFromTime {
		utils.BadRequest(c, "availableToTime must be after availableFromTime")
		return
	}

	if req.ID != "" {
		var doctor models.Doctor
		if err := h.DB.First(&doctor, "id = ?", req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.NotFound(c, "Doctor not found")
			} else {
				utils.InternalServerError(c, "Database error: "+err.Error())
			}
			return
		}
		if err := models.AssertOwned(&doctor, clinicID); err != nil {
			utils.NotFound(c, "Doctor not found")
			return
		}

		doctor.Name = req.Name
		doctor.Speciality = req.Speciality
		doctor.AvailableFromWeekDay = req.AvailableFromWeekDay
		doctor.AvailableToWeekDay = req.AvailableToWeekDay
		doctor.AvailableFromTime = req.AvailableFromTime
		doctor.AvailableToTime = req.AvailableToTime
		doctor.AppointmentPriceInCents = req.AppointmentPriceInCents

		if err := h.DB.Save(&doctor).Error; err != nil {
			utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
			return
		}

		utils.Success(c, "Doctor updated successfully", doctor)
		return
	}

	doctor := models.Doctor{
		ClinicID:                clinicID,
		Name:                    req.Name,
		Speciality:              req.Speciality,
		AvailableFromWeekDay:    req.AvailableFromWeekDay,
		AvailableToWeekDay:      req.AvailableToWeekDay,
		AvailableFromTime:       req.AvailableFromTime,
		AvailableToTime:         req.AvailableToTime,
		AppointmentPriceInCents: req.AppointmentPriceInCents,
	}

	if err := h.DB.Create(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	utils.Created(c, "Doctor created successfully", doctor)
}

// GetDoctors lists the session clinic's doctors.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var doctors []models.Doctor
	if err := h.DB.Where("clinic_id = ?", clinicID).Order("name asc").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetDoctorByID fetches one doctor owned by the session clinic.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if err := models.AssertOwned(&doctor, clinicID); err != nil {
		utils.NotFound(c, "Doctor not found")
		return
	}

	utils.Success(c, "Doctor fetched successfully", doctor)
}

// DeleteDoctor removes a doctor owned by the session clinic.
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if err := models.AssertOwned(&doctor, clinicID); err != nil {
		utils.NotFound(c, "Doctor not found")
		return
	}

	if err := h.DB.Delete(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor deleted successfully", nil)
}
