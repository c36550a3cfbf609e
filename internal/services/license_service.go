package services

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/zxcv616/WavHaven/internal/models"
	"github.com/zxcv616/WavHaven/internal/repositories"
	"github.com/zxcv616/WavHaven/pkg/rabbitmq"
)

// LicenseService handles license CRUD. No coordinator is involved:
// licenses are plain rows, optionally linked to a purchasing user.
type LicenseService struct {
	licenseRepo repositories.LicenseRepository
	trackRepo   repositories.TrackRepository
	mqClient    *rabbitmq.Client
}

// NewLicenseService creates a new LicenseService. mqClient may be nil,
// in which case event publication is skipped.
func NewLicenseService(licenseRepo repositories.LicenseRepository, trackRepo repositories.TrackRepository, mqClient *rabbitmq.Client) *LicenseService {
	return &LicenseService{
		licenseRepo: licenseRepo,
		trackRepo:   trackRepo,
		mqClient:    mqClient,
	}
}

// CreateLicense validates the track reference and inserts the license.
func (s *LicenseService) CreateLicense(req *models.LicenseRequest) (*models.License, error) {
	if _, err := s.trackRepo.GetByID(req.TrackID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTrackMissing
		}
		return nil, err
	}

	license := &models.License{
		TrackID:       req.TrackID,
		UserID:        req.UserID,
		LicenseType:   req.LicenseType,
		Price:         *req.Price,
		AgreementText: req.AgreementText,
		FilePath:      req.FilePath,
	}
	if err := s.licenseRepo.Create(license); err != nil {
		return nil, err
	}

	s.publish("license.created", license)
	return license, nil
}

// GetAllLicenses retrieves all licenses.
func (s *LicenseService) GetAllLicenses() ([]models.License, error) {
	return s.licenseRepo.GetAll()
}

// GetLicenseByID retrieves a single license.
func (s *LicenseService) GetLicenseByID(id string) (*models.License, error) {
	return s.licenseRepo.GetByID(id)
}

// UpdateLicense applies the request to an existing license. A changed
// track reference is validated the same way as on create.
func (s *LicenseService) UpdateLicense(id string, req *models.LicenseRequest) (*models.License, error) {
	license, err := s.licenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.TrackID != "" && req.TrackID != license.TrackID {
		if _, err := s.trackRepo.GetByID(req.TrackID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrTrackMissing
			}
			return nil, err
		}
		license.TrackID = req.TrackID
	}
	license.UserID = req.UserID
	license.LicenseType = req.LicenseType
	license.Price = *req.Price
	license.AgreementText = req.AgreementText
	license.FilePath = req.FilePath

	if err := s.licenseRepo.Update(license); err != nil {
		return nil, err
	}

	s.publish("license.updated", license)
	return license, nil
}

// DeleteLicense removes a license.
func (s *LicenseService) DeleteLicense(id string) error {
	if err := s.licenseRepo.Delete(id); err != nil {
		return err
	}
	s.publish("license.deleted", map[string]string{"licenseID": id})
	return nil
}

func (s *LicenseService) publish(event string, payload interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.mqClient.Publish(event, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
