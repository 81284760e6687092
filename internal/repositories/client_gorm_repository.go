package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vethome/internal/models"
)

// GORMClientRepository is a GORM implementation of ClientRepository.
type GORMClientRepository struct {
	db *gorm.DB
}

// NewGORMClientRepository creates a new instance of GORMClientRepository.
func NewGORMClientRepository(db *gorm.DB) *GORMClientRepository {
	return &GORMClientRepository{
		db: db,
	}
}

// Create inserts the client and fills in its generated ID.
func (r *GORMClientRepository) Create(ctx context.Context, client *models.Client) error {
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("client with email %s: %w", client.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// GetByEmail retrieves a client by exact email match.
func (r *GORMClientRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client by email %s: %w", email, err)
	}
	return &client, nil
}

// GetByID retrieves a client by its ID.
func (r *GORMClientRepository) GetByID(ctx context.Context, id int64) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client by ID %d: %w", id, err)
	}
	return &client, nil
}

// GetAll retrieves every client ordered by ID.
func (r *GORMClientRepository) GetAll(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to get all clients: %w", err)
	}
	return clients, nil
}

func (r *GORMClientRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Client{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return n, nil
}

// Delete removes a client together with its pets and appointments.
func (r *GORMClientRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The foreign keys cascade too; deleting children explicitly keeps the
		// behaviour when the driver runs without foreign key enforcement.
		if err := tx.Where("owner_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return fmt.Errorf("failed to delete appointments of client %d: %w", id, err)
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Pet{}).Error; err != nil {
			return fmt.Errorf("failed to delete pets of client %d: %w", id, err)
		}
		res := tx.Delete(&models.Client{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete client: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("client with ID %d: %w", id, ErrNotFound)
		}
		return nil
	})
}
