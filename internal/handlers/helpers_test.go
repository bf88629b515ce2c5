package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"clinic-agenda-server/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Clinic{},
		&models.UserClinic{},
		&models.Doctor{},
		&models.Patient{},
		&models.Appointment{},
	))
	return db
}

// sessionAs stands in for AuthMiddleware + RequireClinic in handler tests.
func sessionAs(userID, clinicID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set("userID", userID)
		}
		if clinicID != "" {
			c.Set("clinicID", clinicID)
		}
	}
}

func seedClinic(t *testing.T, db *gorm.DB, name string) models.Clinic {
	t.Helper()
	clinic := models.Clinic{Name: name}
	require.NoError(t, db.Create(&clinic).Error)
	return clinic
}

func seedDoctor(t *testing.T, db *gorm.DB, clinicID string) models.Doctor {
	t.Helper()
	doctor := models.Doctor{
		ClinicID:                clinicID,
		Name:                    "Dr. Souza",
		Speciality:              "Cardiology",
		AvailableFromWeekDay:    1,
		AvailableToWeekDay:      5,
		AvailableFromTime:       "08:00:00",
		AvailableToTime:         "12:00:00",
		AppointmentPriceInCents: 15000,
	}
	require.NoError(t, db.Create(&doctor).Error)
	return doctor
}

func seedPatient(t *testing.T, db *gorm.DB, clinicID string) models.Patient {
	t.Helper()
	patient := models.Patient{
		ClinicID:    clinicID,
		Name:        "Ana Lima",
		Email:       "ana@example.com",
		PhoneNumber: "11999990000",
		Gender:      models.GenderFemale,
	}
	require.NoError(t, db.Create(&patient).Error)
	return patient
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}
