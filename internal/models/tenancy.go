package models

import "errors"

// ErrNotFound is returned when an entity does not exist or belongs to a
// different clinic. The two cases are intentionally indistinguishable so a
// caller can never confirm that another tenant's record exists.
var ErrNotFound = errors.New("not found")

// Owned is implemented by every clinic-scoped entity.
type Owned interface {
	OwnerClinicID() string
}

// AssertOwned checks that the entity belongs to the acting clinic.
func AssertOwned(entity Owned, clinicID string) error {
	if entity.OwnerClinicID() != clinicID {
		return ErrNotFound
	}
	return nil
}
