package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/models"
)

func doctorRouter(t *testing.T, db *gorm.DB, clinicID string) *gin.Engine {
	t.Helper()
	handler := NewDoctorHandler(db)
	router := gin.New()
	group := router.Group("/doctors", sessionAs("user-1", clinicID))
	group.POST("", handler.UpsertDoctor)
	group.GET("", handler.GetDoctors)
	group.GET("/:id", handler.GetDoctorByID)
	group.DELETE("/:id", handler.DeleteDoctor)
	return router
}

func validDoctorBody() map[string]interface{} {
	return map[string]interface{}{
		"name":                    "Dr. Souza",
		"speciality":              "Cardiology",
		"availableFromWeekDay":    1,
		"availableToWeekDay":      5,
		"availableFromTime":       "08:00:00",
		"availableToTime":         "12:00:00",
		"appointmentPriceInCents": 15000,
	}
}

func TestUpsertDoctor_Create(t *testing.T) {
	db := openTestDB(t)
	clinic := seedClinic(t, db, "Clinic A")
	router := doctorRouter(t, db, clinic.ID)

	rec := doJSON(t, router, http.MethodPost, "/doctors", validDoctorBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var doctor models.Doctor
	decodeData(t, rec, &doctor)
	assert.NotEmpty(t, doctor.ID)
	assert.Equal(t, clinic.ID, doctor.ClinicID)
}

func TestUpsertDoctor_InvertedWindowRejected(t *testing.T) {
	db := openTestDB(t)
	clinic := seedClinic(t, db, "Clinic A")
	router := doctorRouter(t, db, clinic.ID)

	body := validDoctorBody()
	body["availableFromTime"] = "12:00:00"
	body["availableToTime"] = "08:00:00"

	rec := doJSON(t, router, http.MethodPost, "/doctors", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.Doctor{}).Count(&count).Error)
	assert.Zero(t, count, "rejected before any storage access")
}

func TestUpsertDoctor_ZeroWidthWindowRejected(t *testing.T) {
	db := openTestDB(t)
	clinic := seedClinic(t, db, "Clinic A")
	router := doctorRouter(t, db, clinic.ID)

	body := validDoctorBody()
	body["availableFromTime"] = "08:00:00"
	body["availableToTime"] = "08:00:00"

	rec := doJSON(t, router, http.MethodPost, "/doctors", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertDoctor_Update(t *testing.T) {
	db := openTestDB(t)
	clinic := seedClinic(t, db, "Clinic A")
	doctor := seedDoctor(t, db, clinic.ID)
	router := doctorRouter(t, db, clinic.ID)

	body := validDoctorBody()
	body["id"] = doctor.ID
	body["speciality"] = "Dermatology"

	rec := doJSON(t, router, http.MethodPost, "/doctors", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Doctor
	require.NoError(t, db.First(&updated, "id = ?", doctor.ID).Error)
	assert.Equal(t, "Dermatology", updated.Speciality)
}

func TestUpsertDoctor_CrossTenantUpdate(t *testing.T) {
	db := openTestDB(t)
	clinicA := seedClinic(t, db, "Clinic A")
	clinicB := seedClinic(t, db, "Clinic B")
	doctor := seedDoctor(t, db, clinicA.ID)
	router := doctorRouter(t, db, clinicB.ID)

	body := validDoctorBody()
	body["id"] = doctor.ID

	rec := doJSON(t, router, http.MethodPost, "/doctors", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDoctors_ScopedToClinic(t *testing.T) {
	db := openTestDB(t)
	clinicA := seedClinic(t, db, "Clinic A")
	clinicB := seedClinic(t, db, "Clinic B")
	seedDoctor(t, db, clinicA.ID)
	seedDoctor(t, db, clinicB.ID)
	router := doctorRouter(t, db, clinicA.ID)

	rec := doJSON(t, router, http.MethodGet, "/doctors", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doctors []models.Doctor
	decodeData(t, rec, &doctors)
	require.Len(t, doctors, 1)
	assert.Equal(t, clinicA.ID, doctors[0].ClinicID)
}

func TestDeleteDoctor_CrossTenant(t *testing.T) {
	db := openTestDB(t)
	clinicA := seedClinic(t, db, "Clinic A")
	clinicB := seedClinic(t, db, "Clinic B")
	doctor := seedDoctor(t, db, clinicA.ID)
	router := doctorRouter(t, db, clinicB.ID)

	rec := doJSON(t, router, http.MethodDelete, "/doctors/"+doctor.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.Doctor{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
