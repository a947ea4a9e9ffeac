package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/smartclinic/clinic-system/internal/core/domain"
	"github.com/smartclinic/clinic-system/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type stubAccountRepo struct {
	accounts []*domain.Account
}

func (r *stubAccountRepo) FindByIdentifier(_ context.Context, role domain.Role, identifier string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Role == role && a.Identifier == identifier {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	clone := *account
	if clone.ID == "" {
		clone.ID = "acc_" + strconv.Itoa(len(r.accounts)+1)
	}
	r.accounts = append(r.accounts, &clone)
	return &clone, nil
}

type stubDoctorRepo struct {
	doctors []*domain.Doctor
}

func (r *stubDoctorRepo) Create(_ context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	clone := *d
	if clone.ID == "" {
		clone.ID = "doc_" + strconv.Itoa(len(r.doctors)+1)
	}
	r.doctors = append(r.doctors, &clone)
	out := clone
	return &out, nil
}

func (r *stubDoctorRepo) FindByID(_ context.Context, id string) (*domain.Doctor, error) {
	for _, d := range r.doctors {
		if d.ID == id {
			clone := *d
			return &clone, nil
		}
	}
	return nil, domain.ErrDoctorNotFound
}

func (r *stubDoctorRepo) FindByEmail(_ context.Context, email string) (*domain.Doctor, error) {
	for _, d := range r.doctors {
		if d.Email == email {
			clone := *d
			return &clone, nil
		}
	}
	return nil, domain.ErrDoctorNotFound
}

func (r *stubDoctorRepo) List(_ context.Context, filter ports.DoctorFilter) ([]*domain.Doctor, error) {
	var out []*domain.Doctor
	for _, d := range r.doctors {
		if filter.Name != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Specialty != "" && !strings.EqualFold(d.Specialty, filter.Specialty) {
			continue
		}
		clone := *d
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubDoctorRepo) Update(_ context.Context, d *domain.Doctor) error {
	for i, existing := range r.doctors {
		if existing.ID == d.ID {
			clone := *d
			r.doctors[i] = &clone
			return nil
		}
	}
	return domain.ErrDoctorNotFound
}

func (r *stubDoctorRepo) Delete(_ context.Context, id string) error {
	for i, d := range r.doctors {
		if d.ID == id {
			r.doctors = append(r.doctors[:i], r.doctors[i+1:]...)
			return nil
		}
	}
	return domain.ErrDoctorNotFound
}

type stubPatientRepo struct {
	patients []*domain.Patient
}

func (r *stubPatientRepo) Create(_ context.Context, p *domain.Patient) (*domain.Patient, error) {
	clone := *p
	if clone.ID == "" {
		clone.ID = "pat_" + strconv.Itoa(len(r.patients)+1)
	}
	r.patients = append(r.patients, &clone)
	out := clone
	return &out, nil
}

func (r *stubPatientRepo) FindByID(_ context.Context, id string) (*domain.Patient, error) {
	for _, p := range r.patients {
		if p.ID == id {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPatientNotFound
}

func (r *stubPatientRepo) FindByEmail(_ context.Context, email string) (*domain.Patient, error) {
	for _, p := range r.patients {
		if p.Email == email {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPatientNotFound
}

type stubAppointmentRepo struct {
	appointments []*domain.Appointment
	events       []*domain.AppointmentEvent
	insertErr    error
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	clone := *a
	if clone.ID == "" {
		clone.ID = "apt_" + strconv.Itoa(len(r.appointments)+1)
	}
	r.appointments = append(r.appointments, &clone)
	out := clone
	return &out, nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id string) (*domain.Appointment, error) {
	for _, a := range r.appointments {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAppointmentNotFound
}

func (r *stubAppointmentRepo) FindByIdempotencyKey(_ context.Context, key string) (*domain.Appointment, error) {
	for _, a := range r.appointments {
		if a.IdempotencyKey != "" && a.IdempotencyKey == key {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAppointmentNotFound
}

func (r *stubAppointmentRepo) FindBySlot(_ context.Context, doctorID, date, slot string) (*domain.Appointment, error) {
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.Date == date && a.Slot == slot && a.Status != domain.StatusCancelled {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAppointmentNotFound
}

func (r *stubAppointmentRepo) List(_ context.Context, filter ports.AppointmentFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, a := range r.appointments {
		if filter.DoctorID != "" && a.DoctorID != filter.DoctorID {
			continue
		}
		if filter.PatientID != "" && a.PatientID != filter.PatientID {
			continue
		}
		if filter.Date != "" && a.Date != filter.Date {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, a *domain.Appointment) error {
	for i, existing := range r.appointments {
		if existing.ID == a.ID {
			clone := *a
			r.appointments[i] = &clone
			return nil
		}
	}
	return domain.ErrAppointmentNotFound
}

func (r *stubAppointmentRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus, ts time.Time, source string) error {
	for _, a := range r.appointments {
		if a.ID == id {
			a.Status = status
			a.StatusHistory = append(a.StatusHistory, domain.StatusHistoryEntry{Status: status, Timestamp: ts, Notes: source})
			return nil
		}
	}
	return domain.ErrAppointmentNotFound
}

func (r *stubAppointmentRepo) InsertEvent(_ context.Context, event *domain.AppointmentEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *event
	r.events = append(r.events, &clone)
	return nil
}

type stubPrescriptionRepo struct {
	prescriptions []*domain.Prescription
}

func (r *stubPrescriptionRepo) Create(_ context.Context, p *domain.Prescription) (*domain.Prescription, error) {
	clone := *p
	if clone.ID == "" {
		clone.ID = "rx_" + strconv.Itoa(len(r.prescriptions)+1)
	}
	r.prescriptions = append(r.prescriptions, &clone)
	out := clone
	return &out, nil
}

func (r *stubPrescriptionRepo) FindByAppointment(_ context.Context, appointmentID string) ([]*domain.Prescription, error) {
	var out []*domain.Prescription
	for _, p := range r.prescriptions {
		if p.AppointmentID == appointmentID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

// stubDedup is an in-memory DedupChecker.
type stubDedup struct {
	seen    map[string]bool
	markErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(id, status string, ts time.Time) string {
	return id + "|" + status + "|" + strconv.FormatInt(ts.Unix(), 10)
}

func (d *stubDedup) IsDuplicate(_ context.Context, id, status string, ts time.Time) (bool, error) {
	return d.seen[d.key(id, status, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, id, status string, ts time.Time) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.seen[d.key(id, status, ts)] = true
	return nil
}
