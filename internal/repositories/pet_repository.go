package repositories

import (
	"context"

	"vethome/internal/models"
)

// PetRepository defines the interface for pet data access.
type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	GetByID(ctx context.Context, id int64) (*models.Pet, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]models.Pet, error)
	UpdateWeight(ctx context.Context, id int64, weight float64) error
	Delete(ctx context.Context, id int64) error
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}
