package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Plan granted to a user once their subscription invoice is paid.
const PlanBasic = "basic"

// User represents an account that administers one or more clinics
type User struct {
	BaseModel
	Email                string  `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password             string  `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Name                 string  `gorm:"size:255" json:"name"`
	Plan                 *string `gorm:"size:50" json:"plan,omitempty"`
	StripeCustomerID     *string `gorm:"size:255" json:"-"`
	StripeSubscriptionID *string `gorm:"size:255" json:"-"`

	// Relations (not always preloaded)
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
	Clinics       []UserClinic   `gorm:"foreignKey:UserID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Plan      *string   `json:"plan,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Plan:      u.Plan,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
