package scheduling

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"clinic-agenda-server/internal/models"
)

// ErrSlotUnavailable is returned when the requested time is not a free slot
// for the doctor on the requested date.
var ErrSlotUnavailable = errors.New("time not available")

// Service implements the availability calculator and the appointment writer
// over the relational store.
type Service struct {
	db *gorm.DB
}

// NewService creates a scheduling Service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// AvailableSlots returns the full booking grid for the doctor on the given
// calendar date, each slot flagged with its availability. Read-only: one
// query for the doctor and one for that day's appointments.
func (s *Service) AvailableSlots(doctorID string, date time.Time) ([]Slot, error) {
	return s.availableSlots(doctorID, date, "")
}

func (s *Service) availableSlots(doctorID string, date time.Time, excludeAppointmentID string) ([]Slot, error) {
	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := s.db.Where("doctor_id = ? AND date >= ? AND date < ?", doctorID, dayStart, dayEnd)
	if excludeAppointmentID != "" {
		query = query.Where("id <> ?", excludeAppointmentID)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}

	booked := make([]time.Time, len(appointments))
	for i, appointment := range appointments {
		booked[i] = appointment.Date
	}

	return ComputeSlots(&doctor, dayStart, booked), nil
}

// AppointmentInput carries a proposed appointment. Date is the calendar date
// (midnight), Time the HH:MM:SS slot. A non-empty ID selects the update path.
type AppointmentInput struct {
	ID           string
	PatientID    string
	DoctorID     string
	Date         time.Time
	Time         string
	PriceInCents int
}

// UpsertAppointment validates tenant ownership and slot availability, then
// creates or replaces the appointment. The clinic id written is always the
// acting clinic's, never client-supplied.
//
// Failure order: an update id that is absent or cross-tenant is
// models.ErrNotFound; so is a doctor or patient outside the acting clinic
// (tenant-opaque, nothing distinguishes "other clinic" from "missing");
// a taken or off-grid time is ErrSlotUnavailable.
func (s *Service) UpsertAppointment(clinicID string, in AppointmentInput) (*models.Appointment, error) {
	var existing *models.Appointment
	if in.ID != "" {
		var appointment models.Appointment
		if err := s.db.First(&appointment, "id = ?", in.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrNotFound
			}
			return nil, err
		}
		if err := models.AssertOwned(&appointment, clinicID); err != nil {
			return nil, err
		}
		existing = &appointment
	}

	var doctor models.Doctor
	if err := s.db.First(&doctor, "id = ?", in.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	if err := models.AssertOwned(&doctor, clinicID); err != nil {
		return nil, err
	}

	var patient models.Patient
	if err := s.db.First(&patient, "id = ?", in.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	if err := models.AssertOwned(&patient, clinicID); err != nil {
		return nil, err
	}

	when, err := combineDateTime(in.Date, in.Time)
	if err != nil {
		return nil, ErrSlotUnavailable
	}

	// Re-validate server side, never trusting the client's earlier read. An
	// update may keep its own current slot; its row is excluded so the slot
	// it occupies stays bookable to itself.
	if existing == nil || !existing.Date.Equal(when) {
		slots, err := s.availableSlots(in.DoctorID, in.Date, in.ID)
		if err != nil {
			return nil, err
		}
		free := false
		for _, slot := range slots {
			if slot.Time == in.Time {
				free = slot.Available
				break
			}
		}
		if !free {
			return nil, ErrSlotUnavailable
		}
	}

	if existing != nil {
		existing.PatientID = in.PatientID
		existing.DoctorID = in.DoctorID
		existing.Date = when
		existing.PriceInCents = in.PriceInCents
		existing.ClinicID = clinicID
		if err := s.db.Save(existing).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrSlotUnavailable
			}
			return nil, err
		}
		return existing, nil
	}

	appointment := &models.Appointment{
		ClinicID:     clinicID,
		PatientID:    in.PatientID,
		DoctorID:     in.DoctorID,
		Date:         when,
		PriceInCents: in.PriceInCents,
	}
	if err := s.db.Create(appointment).Error; err != nil {
		// Two concurrent bookings can both pass the check above; the unique
		// index on (doctor_id, date) decides the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}
	return appointment, nil
}

func combineDateTime(date time.Time, timeOfDay string) (time.Time, error) {
	t, err := time.Parse("15:04:05", timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}
