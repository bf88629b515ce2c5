package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/middleware"
	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/scheduling"
	"clinic-agenda-server/internal/utils"
)

// AppointmentHandler handles appointment booking for the session clinic.
type AppointmentHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Service
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Scheduler: scheduling.NewService(db)}
}

// GetAvailableTimes returns the booking grid for a doctor on a date, each
// slot flagged with its availability. Query params: doctorId, date
// (YYYY-MM-DD).
func (h *AppointmentHandler) GetAvailableTimes(c *gin.Context) {
	doctorID := c.Query("doctorId")
	if doctorID == "" {
		utils.BadRequest(c, "doctorId is required")
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.BadRequest(c, "date must be in YYYY-MM-DD format")
		return
	}

	slots, err := h.Scheduler.AvailableSlots(doctorID, date)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Failed to compute available times: "+err.Error())
		}
		return
	}

	utils.Success(c, "Available times fetched successfully", slots)
}

// UpsertAppointmentRequest represents the request body for booking or
// rescheduling an appointment. A present ID selects the update path.
type UpsertAppointmentRequest struct {
	ID                      string `json:"id" binding:"omitempty,uuid"`
	PatientID               string `json:"patientId" binding:"required,uuid"`
	DoctorID                string `json:"doctorId" binding:"required,uuid"`
	Date                    string `json:"date" binding:"required,datetime=2006-01-02"`
	Time                    string `json:"time" binding:"required,datetime=15:04:05"`
	AppointmentPriceInCents int    `json:"appointmentPriceInCents" binding:"required,min=1"`
}

// UpsertAppointment books an appointment, re-validating availability server
// side before the write.
func (h *AppointmentHandler) UpsertAppointment(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var req UpsertAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.BadRequest(c, "date must be in YYYY-MM-DD format")
		return
	}

	appointment, err := h.Scheduler.UpsertAppointment(clinicID, scheduling.AppointmentInput{
		ID:           req.ID,
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		Date:         date,
		Time:         req.Time,
		PriceInCents: req.AppointmentPriceInCents,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			utils.NotFound(c, "Appointment not found")
		case errors.Is(err, scheduling.ErrSlotUnavailable):
			utils.Conflict(c, "Time not available")
		default:
			utils.InternalServerError(c, "Failed to save appointment: "+err.Error())
		}
		return
	}

	if req.ID != "" {
		utils.Success(c, "Appointment updated successfully", appointment)
		return
	}
	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointments lists the session clinic's appointments in date order.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").
		Where("clinic_id = ?", clinicID).Order("date asc").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// DeleteAppointment removes an appointment owned by the session clinic.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if err := models.AssertOwned(&appointment, clinicID); err != nil {
		utils.NotFound(c, "Appointment not found")
		return
	}

	if err := h.DB.Delete(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment deleted successfully", nil)
}
