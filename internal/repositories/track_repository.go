package repositories

import "github.com/zxcv616/WavHaven/internal/models"

// TrackRepository defines the interface for track data access.
type TrackRepository interface {
	Create(track *models.Track) error
	GetByID(id string) (*models.Track, error)
	// List returns one page of tracks plus the total count for the
	// same filter. An empty userID means no owner filter.
	List(userID string, offset, limit int) ([]models.Track, int64, error)
	Update(track *models.Track) error
	Delete(id string) error
}
