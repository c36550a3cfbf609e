package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/zxcv616/WavHaven/internal/models"
	"github.com/zxcv616/WavHaven/internal/repositories"
	"github.com/zxcv616/WavHaven/pkg/objectstore"
	"github.com/zxcv616/WavHaven/pkg/rabbitmq"
)

// TrackService coordinates track uploads across object storage and the
// record store, and handles plain track CRUD.
type TrackService struct {
	trackRepo repositories.TrackRepository
	store     objectstore.Uploader
	mqClient  *rabbitmq.Client
}

// NewTrackService creates a new TrackService. mqClient may be nil, in
// which case event publication is skipped.
func NewTrackService(trackRepo repositories.TrackRepository, store objectstore.Uploader, mqClient *rabbitmq.Client) *TrackService {
	return &TrackService{
		trackRepo: trackRepo,
		store:     store,
		mqClient:  mqClient,
	}
}

// storageKey derives the object key for an upload:
// {ownerID}-{filename}-{timestamp}.{ext}, second resolution, extension
// taken after the last dot (empty segment when there is none). Two
// uploads of the same filename by the same owner within one second
// collide; last write wins in the bucket.
func storageKey(ownerID, filename string, now time.Time) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i+1:]
	}
	return fmt.Sprintf("%s-%s-%s.%s", ownerID, filename, now.Format("20060102150405"), ext)
}

// Upload stores the file in object storage and persists the track row.
// The resulting public URL is used for both file_path and preview_path;
// there is no separate preview generation.
func (s *TrackService) Upload(ctx context.Context, ownerID string, file io.Reader, size int64, filename, contentType string, meta *models.TrackMetadata) (*models.Track, error) {
	if file == nil || size == 0 {
		return nil, ErrNoFile
	}

	key := storageKey(ownerID, filename, time.Now())

	if err := s.store.Put(ctx, key, file, size, contentType); err != nil {
		log.Printf("Upload of %s failed: %v", key, err)
		switch {
		case errors.Is(err, objectstore.ErrCredentialsMissing):
			return nil, ErrStorageCredentials
		case errors.Is(err, objectstore.ErrClient):
			return nil, ErrStorageClient
		default:
			return nil, ErrStorageUnknown
		}
	}

	fileURL := s.store.PublicURL(key)
	track := &models.Track{
		UserID:      ownerID,
		Title:       meta.Title,
		Genre:       meta.Genre,
		BPM:         meta.BPM,
		Key:         meta.Key,
		FilePath:    fileURL,
		PreviewPath: fileURL,
	}
	if err := s.trackRepo.Create(track); err != nil {
		return nil, fmt.Errorf("failed to persist uploaded track: %w", err)
	}

	s.publish("track.uploaded", map[string]interface{}{
		"trackID": track.ID,
		"userID":  track.UserID,
		"title":   track.Title,
	})
	return track, nil
}

// GetTrack retrieves a single track.
func (s *TrackService) GetTrack(id string) (*models.Track, error) {
	return s.trackRepo.GetByID(id)
}

// ListTracks returns one page of tracks plus the total count,
// optionally filtered by owner.
func (s *TrackService) ListTracks(userID string, page, pageSize int) ([]models.Track, int64, error) {
	if page < 1 {
		page = 1
	}
	return s.trackRepo.List(userID, (page-1)*pageSize, pageSize)
}

// UpdateTrack applies client-settable metadata to an existing track.
// File paths are untouchable here; only the upload coordinator writes
// them.
func (s *TrackService) UpdateTrack(id string, meta *models.TrackUpdateRequest) (*models.Track, error) {
	track, err := s.trackRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if meta.Title != "" {
		track.Title = meta.Title
	}
	if meta.Genre != "" {
		track.Genre = meta.Genre
	}
	if meta.BPM != nil {
		track.BPM = meta.BPM
	}
	if meta.Key != "" {
		track.Key = meta.Key
	}
	if err := s.trackRepo.Update(track); err != nil {
		return nil, err
	}
	return track, nil
}

// DeleteTrack removes a track and, through the cascade constraint, its
// licenses. The uploaded blob stays in the bucket.
func (s *TrackService) DeleteTrack(id string) error {
	return s.trackRepo.Delete(id)
}

func (s *TrackService) publish(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
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
