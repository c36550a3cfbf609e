package repositories

import "github.com/zxcv616/WavHaven/internal/models"

// LicenseRepository defines the interface for license data access.
type LicenseRepository interface {
	Create(license *models.License) error
	GetByID(id string) (*models.License, error)
	GetAll() ([]models.License, error)
	Update(license *models.License) error
	Delete(id string) error
}
