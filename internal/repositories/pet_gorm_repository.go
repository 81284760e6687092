package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vethome/internal/models"
)

// GORMPetRepository is a GORM implementation of PetRepository.
type GORMPetRepository struct {
	db *gorm.DB
}

// NewGORMPetRepository creates a new instance of GORMPetRepository.
func NewGORMPetRepository(db *gorm.DB) *GORMPetRepository {
	return &GORMPetRepository{
		db: db,
	}
}

// Create inserts the pet and fills in its generated ID.
func (r *GORMPetRepository) Create(ctx context.Context, pet *models.Pet) error {
	if err := r.db.WithContext(ctx).Create(pet).Error; err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}
	return nil
}

// GetByID retrieves a single pet by its ID.
func (r *GORMPetRepository) GetByID(ctx context.Context, id int64) (*models.Pet, error) {
	var pet models.Pet
	if err := r.db.WithContext(ctx).First(&pet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pet with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pet by ID %d: %w", id, err)
	}
	return &pet, nil
}

// GetByOwner lists an owner's pets ordered by name.
func (r *GORMPetRepository) GetByOwner(ctx context.Context, ownerID int64) ([]models.Pet, error) {
	pets := make([]models.Pet, 0)
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("name ASC").Find(&pets).Error; err != nil {
		return nil, fmt.Errorf("failed to get pets for owner %d: %w", ownerID, err)
	}
	return pets, nil
}

// UpdateWeight sets a new weight on an existing pet.
func (r *GORMPetRepository) UpdateWeight(ctx context.Context, id int64, weight float64) error {
	res := r.db.WithContext(ctx).Model(&models.Pet{}).Where("id = ?", id).Update("weight", weight)
	if res.Error != nil {
		return fmt.Errorf("failed to update pet weight: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("pet with ID %d not found for update: %w", id, ErrNotFound)
	}
	return nil
}

// Delete deletes a pet and its appointments.
func (r *GORMPetRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pet_id = ?", id).Delete(&models.Appointment{}).Error; err != nil {
			return fmt.Errorf("failed to delete appointments of pet %d: %w", id, err)
		}
		res := tx.Delete(&models.Pet{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete pet: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("pet with ID %d not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (r *GORMPetRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Pet{}).Where("owner_id = ?", ownerID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count pets for owner %d: %w", ownerID, err)
	}
	return n, nil
}

func (r *GORMPetRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Pet{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count pets: %w", err)
	}
	return n, nil
}
