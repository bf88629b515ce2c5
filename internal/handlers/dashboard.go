package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/middleware"
	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/utils"
)

// DashboardHandler serves the clinic overview aggregates.
type DashboardHandler struct {
	DB *gorm.DB
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// TopDoctor is a doctor ranked by appointment count.
type TopDoctor struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Speciality       string `json:"speciality"`
	AppointmentCount int64  `json:"appointments"`
}

// TopSpeciality is a speciality ranked by appointment count.
type TopSpeciality struct {
	Speciality       string `json:"speciality"`
	AppointmentCount int64  `json:"appointments"`
}

// DashboardResponse aggregates the session clinic's activity.
type DashboardResponse struct {
	Doctors           int64                `json:"doctors"`
	Patients          int64                `json:"patients"`
	Appointments      int64                `json:"appointments"`
	RevenueInCents    int64                `json:"revenueInCents"`
	TopDoctors        []TopDoctor          `json:"topDoctors"`
	TopSpecialities   []TopSpeciality      `json:"topSpecialities"`
	TodayAppointments []models.Appointment `json:"todayAppointments"`
}

// GetDashboard returns totals, revenue, top doctors/specialities and today's
// appointments, all scoped to the session clinic.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	clinicID, exists := middleware.GetClinicIDFromContext(c)
	if !exists {
		utils.NotFound(c, "Clinic not found")
		return
	}

	var resp DashboardResponse

	if err := h.DB.Model(&models.Doctor{}).Where("clinic_id = ?", clinicID).Count(&resp.Doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to count doctors: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Patient{}).Where("clinic_id = ?", clinicID).Count(&resp.Patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to count patients: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Appointment{}).Where("clinic_id = ?", clinicID).Count(&resp.Appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}

	if err := h.DB.Model(&models.Appointment{}).Where("clinic_id = ?", clinicID).
		Select("COALESCE(SUM(price_in_cents), 0)").Scan(&resp.RevenueInCents).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute revenue: "+err.Error())
		return
	}

	if err := h.DB.Table("appointments").
		Select("doctors.id, doctors.name, doctors.speciality, COUNT(appointments.id) AS appointment_count").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("appointments.clinic_id = ?", clinicID).
		Group("doctors.id, doctors.name, doctors.speciality").
		Order("appointment_count DESC").
		Limit(10).
		Scan(&resp.TopDoctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to rank doctors: "+err.Error())
		return
	}

	if err := h.DB.Table("appointments").
		Select("doctors.speciality, COUNT(appointments.id) AS appointment_count").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("appointments.clinic_id = ?", clinicID).
		Group("doctors.speciality").
		Order("appointment_count DESC").
		Limit(10).
		Scan(&resp.TopSpecialities).Error; err != nil {
		utils.InternalServerError(c, "Failed to rank specialities: "+err.Error())
		return
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	if err := h.DB.Preload("Patient").Preload("Doctor").
		Where("clinic_id = ? AND date >= ? AND date < ?", clinicID, dayStart, dayEnd).
		Order("date asc").Find(&resp.TodayAppointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch today's appointments: "+err.Error())
		return
	}

	utils.Success(c, "Dashboard fetched successfully", resp)
}
