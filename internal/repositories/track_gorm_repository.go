package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zxcv616/WavHaven/internal/models"
)

// GORMTrackRepository is a GORM implementation of TrackRepository.
type GORMTrackRepository struct {
	db *gorm.DB
}

// NewGORMTrackRepository creates a new instance of GORMTrackRepository.
func NewGORMTrackRepository(db *gorm.DB) *GORMTrackRepository {
	return &GORMTrackRepository{db: db}
}

// Create inserts a new track, generating an ID when none is set.
func (r *GORMTrackRepository) Create(track *models.Track) error {
	if track.ID == "" {
		track.ID = uuid.New().String()
	}
	if err := r.db.Create(track).Error; err != nil {
		return fmt.Errorf("failed to create track: %w", err)
	}
	return nil
}

// GetByID retrieves a single track by its ID.
func (r *GORMTrackRepository) GetByID(id string) (*models.Track, error) {
	var track models.Track
	if err := r.db.First(&track, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("track %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get track by ID %s: %w", id, err)
	}
	return &track, nil
}

// List returns one page of tracks ordered by creation time, newest
// first, optionally filtered by owner, plus the total count for the
// same filter.
func (r *GORMTrackRepository) List(userID string, offset, limit int) ([]models.Track, int64, error) {
	query := r.db.Model(&models.Track{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tracks: %w", err)
	}

	var tracks []models.Track
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tracks).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tracks: %w", err)
	}
	return tracks, count, nil
}

// Update saves changes to an existing track.
func (r *GORMTrackRepository) Update(track *models.Track) error {
	if err := r.db.Save(track).Error; err != nil {
		return fmt.Errorf("failed to update track %s: %w", track.ID, err)
	}
	return nil
}

// Delete removes a track; its licenses cascade with it.
func (r *GORMTrackRepository) Delete(id string) error {
	res := r.db.Delete(&models.Track{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete track %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("track %s: %w", id, ErrNotFound)
	}
	return nil
}
