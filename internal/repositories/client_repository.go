package repositories

import (
	"context"

	"vethome/internal/models"
)

// ClientRepository defines the interface for client data access.
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	GetByID(ctx context.Context, id int64) (*models.Client, error)
	GetAll(ctx context.Context) ([]models.Client, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}
