package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/models"
	"clinic-agenda-server/internal/scheduling"
)

func appointmentRouter(t *testing.T, db *gorm.DB, clinicID string) *gin.Engine {
	t.Helper()
	handler := NewAppointmentHandler(db)
	router := gin.New()
	group := router.Group("/appointments", sessionAs("user-1", clinicID))
	group.GET("/available-times", handler.GetAvailableTimes)
	group.POST("", handler.UpsertAppointment)
	group.GET("", handler.GetAppointments)
	group.DELETE("/:id", handler.DeleteAppointment)
	return router
}

func bookingBody(patientID, doctorID string) map[string]interface{} {
	return map[string]interface{}{
		"patientId":               patientID,
		"doctorId":                doctorID,
		"date":                    "2025-06-11", // a Wednesday
		"time":                    "09:00:00",
		"appointmentPriceInCents": 15000,
	}
}

func TestGetAvailableTimes(t *testing.T) {
	db := openTestDB(t)
	clinic := seedClinic(t, db, "Clinic A")
	doctor := seedDoctor(t, db, clinic.ID)
	router := appointmentRouter(t, db, clinic.ID)

	rec := doJSON(t, router, http.MethodGet,
		"/appointments/available-times?doctorId="+doctor.ID+"&date=2025-06-11", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var slots []scheduling.Slot
	decodeData(t, rec, &slots)
	require.Len(t, slots, 33)

	available := 0
	for _, slot := range slots {
		if slot.Available {
			available++
		}
	}
	assert.Equal(t, 8, available, "08:00 through 11:30 on a Wednesday")
}

func TestGetAvailableTimes_UnknownDoctor(t *testing.T) {
	db := openTestDB(t)
	clinic := seedClinic(t, db, "Clinic A")
	router := appointmentRouter(t, db, clinic.ID)

	rec := doJSON(t, router, http.MethodGet,
		"/appointments/available-times?doctorId=2c3cb9f0-0000-0000-0000-000000000000&date=2025-06-11", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAvailableTimes_BadDate(t *testing.T) {
	db := openTestDB(t)
	clinic := seedClinic(t, db, "Clinic A")
	doctor := seedDoctor(t, db, clinic.ID)
	router := appointmentRouter(t, db, clinic.ID)

	rec := doJSON(t, router, http.MethodGet,
		"/appointments/available-times?doctorId="+doctor.ID+"&date=11-06-2025", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertAppointment_CreateAndConflict(t *testing.T) {
	db := openTestDB(t)
	clinic := seedClinic(t, db, "Clinic A")
	doctor := seedDoctor(t, db, clinic.ID)
	patient := seedPatient(t, db, clinic.ID)
	router := appointmentRouter(t, db, clinic.ID)

	body := bookingBody(patient.ID, doctor.ID)

	rec := doJSON(t, router, http.MethodPost, "/appointments", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same doctor, date and time: the second booking loses.
	rec = doJSON(t, router, http.MethodPost, "/appointments", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpsertAppointment_CrossTenantUpdate(t *testing.T) {
	db := openTestDB(t)
	clinicA := seedClinic(t, db, "Clinic A")
	clinicB := seedClinic(t, db, "Clinic B")
	doctor := seedDoctor(t, db, clinicA.ID)
	patient := seedPatient(t, db, clinicA.ID)

	routerA := appointmentRouter(t, db, clinicA.ID)
	rec := doJSON(t, routerA, http.MethodPost, "/appointments", bookingBody(patient.ID, doctor.ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Appointment
	decodeData(t, rec, &created)

	routerB := appointmentRouter(t, db, clinicB.ID)
	body := bookingBody(patient.ID, doctor.ID)
	body["id"] = created.ID
	body["time"] = "09:30:00"

	rec = doJSON(t, routerB, http.MethodPost, "/appointments", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpsertAppointment_ValidationRejectedBeforeStorage(t *testing.T) {
	db := openTestDB(t)
	clinic := seedClinic(t, db, "Clinic A")
	doctor := seedDoctor(t, db, clinic.ID)
	patient := seedPatient(t, db, clinic.ID)
	router := appointmentRouter(t, db, clinic.ID)

	body := bookingBody(patient.ID, doctor.ID)
	body["time"] = "9am"

	rec := doJSON(t, router, http.MethodPost, "/appointments", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetAppointments_ScopedToClinic(t *testing.T) {
	db := openTestDB(t)
	clinicA := seedClinic(t, db, "Clinic A")
	clinicB := seedClinic(t, db, "Clinic B")
	doctorA := seedDoctor(t, db, clinicA.ID)
	patientA := seedPatient(t, db, clinicA.ID)

	routerA := appointmentRouter(t, db, clinicA.ID)
	rec := doJSON(t, routerA, http.MethodPost, "/appointments", bookingBody(patientA.ID, doctorA.ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	routerB := appointmentRouter(t, db, clinicB.ID)
	rec = doJSON(t, routerB, http.MethodGet, "/appointments", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var appointments []models.Appointment
	decodeData(t, rec, &appointments)
	assert.Empty(t, appointments)
}

func TestDeleteAppointment_FreesSlot(t *testing.T) {
	db := openTestDB(t)
	clinic := seedClinic(t, db, "Clinic A")
	doctor := seedDoctor(t, db, clinic.ID)
	patient := seedPatient(t, db, clinic.ID)
	router := appointmentRouter(t, db, clinic.ID)

	rec := doJSON(t, router, http.MethodPost, "/appointments", bookingBody(patient.ID, doctor.ID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Appointment
	decodeData(t, rec, &created)

	rec = doJSON(t, router, http.MethodDelete, "/appointments/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The slot is bookable again.
	rec = doJSON(t, router, http.MethodPost, "/appointments", bookingBody(patient.ID, doctor.ID))
	assert.Equal(t, http.StatusCreated, rec.Code)
}
