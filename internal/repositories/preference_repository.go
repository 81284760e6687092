package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vethome/internal/models"
)

// PreferenceRepository persists key-value session flags.
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}

// GORMPreferenceRepository stores preferences as rows of the preferences table.
type GORMPreferenceRepository struct {
	db *gorm.DB
}

func NewGORMPreferenceRepository(db *gorm.DB) *GORMPreferenceRepository {
	return &GORMPreferenceRepository{db: db}
}

// Get returns the stored value and whether the key exists.
func (r *GORMPreferenceRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var pref models.Preference
	if err := r.db.WithContext(ctx).First(&pref, "pref_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get preference %s: %w", key, err)
	}
	return pref.Value, true, nil
}

// Set upserts all values in a single transaction.
func (r *GORMPreferenceRepository) Set(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	rows := make([]models.Preference, 0, len(values))
	for k, v := range values {
		rows = append(rows, models.Preference{Key: k, Value: v})
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to set preferences: %w", err)
	}
	return nil
}

// Delete removes the given keys; missing keys are ignored.
func (r *GORMPreferenceRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("pref_key IN ?", keys).Delete(&models.Preference{}).Error; err != nil {
		return fmt.Errorf("failed to delete preferences: %w", err)
	}
	return nil
}
