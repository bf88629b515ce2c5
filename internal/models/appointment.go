package models

import (
	"time"
)

// Appointment represents a booked consultation. Date carries both the
// calendar date and the slot time of day.
//
// The unique index on (doctor_id, date) is the authoritative guard against
// double bookings: the application-level availability check runs first, but
// two concurrent requests can both pass it, and the index decides the loser.
type Appointment struct {
	BaseModel
	ClinicID     string    `gorm:"size:36;index;not null" json:"clinicId"`
	PatientID    string    `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID     string    `gorm:"size:36;not null;uniqueIndex:idx_appointments_doctor_date" json:"doctorId"`
	Date         time.Time `gorm:"not null;uniqueIndex:idx_appointments_doctor_date" json:"date"`
	PriceInCents int       `gorm:"not null" json:"appointmentPriceInCents"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// OwnerClinicID implements the Owned interface for the tenant guard.
func (a *Appointment) OwnerClinicID() string { return a.ClinicID }
