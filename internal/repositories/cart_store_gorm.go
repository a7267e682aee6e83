package repositories

import (
	"errors"
	"fmt"

	"procure/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartStore is a GORM implementation of CartStore backed by the
// cart_snapshots table (one row per storage key).
type GORMCartStore struct {
	db *gorm.DB
}

// NewGORMCartStore creates a new instance of GORMCartStore.
func NewGORMCartStore(db *gorm.DB) *GORMCartStore {
	return &GORMCartStore{
		db: db,
	}
}

// Load reads the snapshot stored under key.
func (s *GORMCartStore) Load(key string) ([]byte, bool, error) {
	var snapshot models.CartSnapshot
	if err := s.db.First(&snapshot, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load cart snapshot %s: %w", key, err)
	}
	return []byte(snapshot.Payload), true, nil
}

// Save upserts the snapshot stored under key.
func (s *GORMCartStore) Save(key string, value []byte) error {
	snapshot := models.CartSnapshot{
		Key:     key,
		Payload: string(value),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&snapshot).Error
	if err != nil {
		return fmt.Errorf("failed to save cart snapshot %s: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot stored under key. Missing keys are a no-op.
func (s *GORMCartStore) Delete(key string) error {
	if err := s.db.Delete(&models.CartSnapshot{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete cart snapshot %s: %w", key, err)
	}
	return nil
}
