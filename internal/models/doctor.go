package models

// Doctor represents a clinic's doctor together with the weekly availability
// window inside which appointments can be booked.
//
// Week days are 0=Sunday..6=Saturday, inclusive on both ends. Times are
// HH:MM:SS strings forming a half-open [from, to) daily window; creation
// rejects windows where to <= from.
type Doctor struct {
	BaseModel
	ClinicID                string `gorm:"size:36;index;not null" json:"clinicId"`
	Name                    string `gorm:"size:255;not null" json:"name"`
	Speciality              string `gorm:"size:255;not null" json:"speciality"`
	AvailableFromWeekDay    int    `gorm:"not null" json:"availableFromWeekDay"`
	AvailableToWeekDay      int    `gorm:"not null" json:"availableToWeekDay"`
	AvailableFromTime       string `gorm:"size:8;not null" json:"availableFromTime"`
	AvailableToTime         string `gorm:"size:8;not null" json:"availableToTime"`
	AppointmentPriceInCents int    `gorm:"not null" json:"appointmentPriceInCents"`

	// Relations
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
}

// OwnerClinicID implements the Owned interface for the tenant guard.
func (d *Doctor) OwnerClinicID() string { return d.ClinicID }
