package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vethome/internal/models"
)

// GORMAppointmentRepository is a GORM implementation of AppointmentRepository.
type GORMAppointmentRepository struct {
	db *gorm.DB
}

// NewGORMAppointmentRepository creates a new instance of GORMAppointmentRepository.
func NewGORMAppointmentRepository(db *gorm.DB) *GORMAppointmentRepository {
	return &GORMAppointmentRepository{
		db: db,
	}
}

// Create inserts the appointment and fills in its generated ID.
func (r *GORMAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := r.db.WithContext(ctx).Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID returns an appointment by its ID.
func (r *GORMAppointmentRepository) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := r.db.WithContext(ctx).First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("appointment with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get appointment by ID %d: %w", id, err)
	}
	return &appointment, nil
}

// GetByOwner lists an owner's appointments in chronological order.
func (r *GORMAppointmentRepository) GetByOwner(ctx context.Context, ownerID int64) ([]models.Appointment, error) {
	appointments := make([]models.Appointment, 0)
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date ASC").Order("time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments for owner %d: %w", ownerID, err)
	}
	return appointments, nil
}

// UpdateStatus updates the status of an appointment.
func (r *GORMAppointmentRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update appointment status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("appointment with ID %d not found for status update: %w", id, ErrNotFound)
	}
	return nil
}
