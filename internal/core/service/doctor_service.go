package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// DoctorService implements doctor CRUD, filtering, and per-date
// availability.
type DoctorService struct {
	doctors      ports.DoctorRepository
	appointments ports.AppointmentRepository
	logger       zerolog.Logger
}

func NewDoctorService(doctors ports.DoctorRepository, appointments ports.AppointmentRepository, logger zerolog.Logger) *DoctorService {
	return &DoctorService{doctors: doctors, appointments: appointments, logger: logger}
}

// List returns doctors matching the filter. Name and specialty are
// pushed down to the repository; the AM/PM period filter is applied in
// memory because slot labels are opaque strings.
func (s *DoctorService) List(ctx context.Context, input ports.ListDoctorsInput) ([]*domain.Doctor, error) {
	doctors, err := s.doctors.List(ctx, ports.DoctorFilter{
		Name:      strings.TrimSpace(input.Name),
		Specialty: strings.TrimSpace(input.Specialty),
	})
	if err != nil {
		return nil, err
	}

	period := strings.ToLower(strings.TrimSpace(input.Period))
	if period == "" {
		return doctors, nil
	}
	wantMorning := period == "am"

	filtered := make([]*domain.Doctor, 0, len(doctors))
	for _, d := range doctors {
		for _, slot := range d.AvailableTimes {
			morning, ok := domain.SlotPeriod(slot)
			if ok && morning == wantMorning {
				filtered = append(filtered, d)
				break
			}
		}
	}
	return filtered, nil
}

func (s *DoctorService) Get(ctx context.Context, id string) (*domain.Doctor, error) {
	return s.doctors.FindByID(ctx, id)
}

func (s *DoctorService) Create(ctx context.Context, input ports.SaveDoctorInput) (*domain.Doctor, error) {
	if _, err := s.doctors.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrDoctorExists
	}

	now := time.Now().UTC()
	doctor, err := s.doctors.Create(ctx, &domain.Doctor{
		Name:           input.Name,
		Specialty:      input.Specialty,
		Email:          input.Email,
		Phone:          input.Phone,
		AvailableTimes: input.AvailableTimes,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("email", input.Email).Msg("failed to create doctor")
		return nil, err
	}

	s.logger.Info().Str("doctor_id", doctor.ID).Str("specialty", doctor.Specialty).Msg("doctor created")
	return doctor, nil
}

func (s *DoctorService) Update(ctx context.Context, id string, input ports.SaveDoctorInput) (*domain.Doctor, error) {
	doctor, err := s.doctors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doctor.Name = input.Name
	doctor.Specialty = input.Specialty
	doctor.Email = input.Email
	doctor.Phone = input.Phone
	doctor.AvailableTimes = input.AvailableTimes
	doctor.UpdatedAt = time.Now().UTC()

	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *DoctorService) Delete(ctx context.Context, id string) error {
	if _, err := s.doctors.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.doctors.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("doctor_id", id).Msg("failed to delete doctor")
		return err
	}
	s.logger.Info().Str("doctor_id", id).Msg("doctor deleted")
	return nil
}

// Availability returns the doctor's configured slots for date minus
// slots held by non-cancelled appointments. Configured order is kept.
func (s *DoctorService) Availability(ctx context.Context, doctorID, date string) ([]string, error) {
	doctor, err := s.doctors.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	booked, err := s.appointments.List(ctx, ports.AppointmentFilter{DoctorID: doctorID, Date: date})
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, a := range booked {
		if a.Status != domain.StatusCancelled {
			taken[a.Slot] = struct{}{}
		}
	}

	free := make([]string, 0, len(doctor.AvailableTimes))
	for _, slot := range doctor.AvailableTimes {
		if _, held := taken[slot]; !held {
			free = append(free, slot)
		}
	}
	return free, nil
}
