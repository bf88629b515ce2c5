package models

// Clinic is the tenant boundary. Every doctor, patient and appointment
// belongs to exactly one clinic.
type Clinic struct {
	BaseModel
	Name string `gorm:"size:255;not null" json:"name"`
}

// UserClinic binds a user account to a clinic. The session clinic is the
// first binding found for the authenticated user.
type UserClinic struct {
	BaseModel
	UserID   string `gorm:"size:36;index;not null" json:"userId"`
	ClinicID string `gorm:"size:36;index;not null" json:"clinicId"`

	// Relations
	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
}
