package services

import (
	"context"
	"errors"
	"fmt"

	"vethome/internal/models"
	"vethome/internal/repositories"
)

// ScheduleInput carries the fields of a new appointment.
type ScheduleInput struct {
	OwnerID int64
	PetID   int64
	Date    string
	Time    string
	Service string
}

var validStatuses = map[string]bool{
	models.AppointmentPending:   true,
	models.AppointmentConfirmed: true,
	models.AppointmentCompleted: true,
	models.AppointmentCancelled: true,
}

// ScheduleAppointment books a pending appointment for one of the owner's pets.
func (s *RecordStore) ScheduleAppointment(ctx context.Context, in ScheduleInput) (int64, error) {
	if _, err := s.clients.GetByID(ctx, in.OwnerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrOwnerNotFound
		}
		return 0, fmt.Errorf("failed to check owner: %w", err)
	}
	pet, err := s.pets.GetByID(ctx, in.PetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrPetNotFound
		}
		return 0, fmt.Errorf("failed to check pet: %w", err)
	}
	if pet.OwnerID != in.OwnerID {
		return 0, ErrPetNotFound
	}

	appointment := &models.Appointment{
		OwnerID: in.OwnerID,
		PetID:   in.PetID,
		Date:    in.Date,
		Time:    in.Time,
		Service: in.Service,
		Status:  models.AppointmentPending, // Initial status
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return 0, err
	}

	s.publish(EventAppointmentScheduled, map[string]interface{}{
		"appointmentID": appointment.ID,
		"ownerID":       appointment.OwnerID,
		"petID":         appointment.PetID,
		"date":          appointment.Date,
		"time":          appointment.Time,
		"service":       appointment.Service,
	})
	return appointment.ID, nil
}

// GetAppointmentsByOwner lists the owner's appointments by date and time.
func (s *RecordStore) GetAppointmentsByOwner(ctx context.Context, ownerID int64) ([]models.Appointment, error) {
	return s.appointments.GetByOwner(ctx, ownerID)
}

// UpdateAppointmentStatus moves an appointment to one of the known statuses.
func (s *RecordStore) UpdateAppointmentStatus(ctx context.Context, id int64, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return err
	}
	s.publish(EventAppointmentStatusUpdated, map[string]interface{}{
		"appointmentID": id,
		"status":        status,
	})
	return nil
}
