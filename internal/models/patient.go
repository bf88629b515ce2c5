package models

// Gender enum
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Patient represents a patient registered at a clinic
type Patient struct {
	BaseModel
	ClinicID    string `gorm:"size:36;index;not null" json:"clinicId"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Email       string `gorm:"size:255;not null" json:"email"`
	PhoneNumber string `gorm:"size:30;not null" json:"phoneNumber"`
	Gender      Gender `gorm:"size:10;not null" json:"gender"`

	// Relations
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"-"`
}

// OwnerClinicID implements the Owned interface for the tenant guard.
func (p *Patient) OwnerClinicID() string { return p.ClinicID }
