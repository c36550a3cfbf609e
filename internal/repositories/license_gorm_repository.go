package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zxcv616/WavHaven/internal/models"
)

// GORMLicenseRepository is a GORM implementation of LicenseRepository.
type GORMLicenseRepository struct {
	db *gorm.DB
}

// NewGORMLicenseRepository creates a new instance of GORMLicenseRepository.
func NewGORMLicenseRepository(db *gorm.DB) *GORMLicenseRepository {
	return &GORMLicenseRepository{db: db}
}

// Create inserts a new license, generating an ID when none is set.
func (r *GORMLicenseRepository) Create(license *models.License) error {
	if license.ID == "" {
		license.ID = uuid.New().String()
	}
	if err := r.db.Create(license).Error; err != nil {
		return fmt.Errorf("failed to create license: %w", err)
	}
	return nil
}

// GetByID retrieves a single license by its ID.
func (r *GORMLicenseRepository) GetByID(id string) (*models.License, error) {
	var license models.License
	if err := r.db.First(&license, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("license %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get license by ID %s: %w", id, err)
	}
	return &license, nil
}

// GetAll retrieves all licenses.
func (r *GORMLicenseRepository) GetAll() ([]models.License, error) {
	var licenses []models.License
	if err := r.db.Find(&licenses).Error; err != nil {
		return nil, fmt.Errorf("failed to get all licenses: %w", err)
	}
	return licenses, nil
}

// Update saves changes to an existing license.
func (r *GORMLicenseRepository) Update(license *models.License) error {
	if err := r.db.Save(license).Error; err != nil {
		return fmt.Errorf("failed to update license %s: %w", license.ID, err)
	}
	return nil
}

// Delete removes a license.
func (r *GORMLicenseRepository) Delete(id string) error {
	res := r.db.Delete(&models.License{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete license %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("license %s: %w", id, ErrNotFound)
	}
	return nil
}
