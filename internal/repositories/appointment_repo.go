package repositories

import (
	"context"

	"vethome/internal/models"
)

// AppointmentRepository defines the interface for appointment data access.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id int64) (*models.Appointment, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	// Appointments are never deleted directly; they go away with their pet or owner.
}
