package services_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zxcv616/WavHaven/internal/models"
	"github.com/zxcv616/WavHaven/internal/services"
	"github.com/zxcv616/WavHaven/pkg/objectstore"
)

// MockTrackRepository is a mock implementation of repositories.TrackRepository
type MockTrackRepository struct {
	mock.Mock
}

func (m *MockTrackRepository) Create(track *models.Track) error {
	args := m.Called(track)
	return args.Error(0)
}

func (m *MockTrackRepository) GetByID(id string) (*models.Track, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Track), args.Error(1)
}

func (m *MockTrackRepository) List(userID string, offset, limit int) ([]models.Track, int64, error) {
	args := m.Called(userID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Track), args.Get(1).(int64), args.Error(2)
}

func (m *MockTrackRepository) Update(track *models.Track) error {
	args := m.Called(track)
	return args.Error(0)
}

func (m *MockTrackRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockUploader is a mock implementation of objectstore.Uploader that
// records the key of the last successful Put.
type MockUploader struct {
	mock.Mock
	LastKey string
}

func (m *MockUploader) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, r, size, contentType)
	if args.Error(0) == nil {
		m.LastKey = key
	}
	return args.Error(0)
}

func (m *MockUploader) PublicURL(key string) string {
	return "https://bucket.s3.us-west-004.backblazeb2.com/" + key
}

func TestTrackService_Upload(t *testing.T) {
	mockRepo := new(MockTrackRepository)
	mockStore := new(MockUploader)
	svc := services.NewTrackService(mockRepo, mockStore, nil)

	mockStore.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.Anything, int64(10), "audio/mpeg").
		Return(nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Track")).Return(nil).Once()

	bpm := 140
	meta := &models.TrackMetadata{Title: "My Beat", Genre: "trap", BPM: &bpm, Key: "Am"}
	track, err := svc.Upload(context.Background(), "owner-1", strings.NewReader("fake sound"), 10,
		"beat.mp3", "audio/mpeg", meta)
	assert.NoError(t, err)

	// Key format: {owner}-{filename}-{YYYYMMDDHHMMSS}.{ext}
	assert.True(t, strings.HasPrefix(mockStore.LastKey, "owner-1-beat.mp3-"))
	assert.True(t, strings.HasSuffix(mockStore.LastKey, ".mp3"))

	expectedURL := mockStore.PublicURL(mockStore.LastKey)
	assert.Equal(t, expectedURL, track.FilePath)
	assert.Equal(t, expectedURL, track.PreviewPath, "preview path reuses the file URL")
	assert.Equal(t, "owner-1", track.UserID)
	assert.Equal(t, "My Beat", track.Title)
	mockStore.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestTrackService_Upload_NoExtension(t *testing.T) {
	mockRepo := new(MockTrackRepository)
	mockStore := new(MockUploader)
	svc := services.NewTrackService(mockRepo, mockStore, nil)

	mockStore.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.Anything, int64(4), "").
		Return(nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.Track")).Return(nil).Once()

	_, err := svc.Upload(context.Background(), "owner-1", strings.NewReader("data"), 4,
		"rawfile", "", &models.TrackMetadata{Title: "Untitled"})
	assert.NoError(t, err)

	// No extension leaves an empty segment after the trailing dot.
	assert.True(t, strings.HasSuffix(mockStore.LastKey, "."),
		"expected empty extension segment, got %s", mockStore.LastKey)
}

func TestTrackService_Upload_NoFile(t *testing.T) {
	mockRepo := new(MockTrackRepository)
	mockStore := new(MockUploader)
	svc := services.NewTrackService(mockRepo, mockStore, nil)

	_, err := svc.Upload(context.Background(), "owner-1", nil, 0, "beat.mp3", "audio/mpeg",
		&models.TrackMetadata{Title: "My Beat"})
	assert.ErrorIs(t, err, services.ErrNoFile)

	// Nothing reaches storage or the record store.
	mockStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestTrackService_Upload_StorageFailures(t *testing.T) {
	cases := []struct {
		name     string
		putErr   error
		expected error
	}{
		{"missing credentials", objectstore.ErrCredentialsMissing, services.ErrStorageCredentials},
		{"provider rejection", fmt.Errorf("%w: AccessDenied", objectstore.ErrClient), services.ErrStorageClient},
		{"unknown failure", errors.New("connection reset"), services.ErrStorageUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockTrackRepository)
			mockStore := new(MockUploader)
			svc := services.NewTrackService(mockRepo, mockStore, nil)

			mockStore.On("Put", mock.Anything, mock.AnythingOfType("string"), mock.Anything, int64(4), "audio/mpeg").
				Return(tc.putErr).Once()

			_, err := svc.Upload(context.Background(), "owner-1", strings.NewReader("data"), 4,
				"beat.mp3", "audio/mpeg", &models.TrackMetadata{Title: "My Beat"})
			assert.ErrorIs(t, err, tc.expected)

			// A failed upload never persists a track.
			mockRepo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestTrackService_UpdateTrack_PreservesFilePaths(t *testing.T) {
	mockRepo := new(MockTrackRepository)
	mockStore := new(MockUploader)
	svc := services.NewTrackService(mockRepo, mockStore, nil)

	existing := &models.Track{
		ID:          "track-1",
		UserID:      "owner-1",
		Title:       "Old Title",
		FilePath:    "https://bucket.example/key",
		PreviewPath: "https://bucket.example/key",
	}
	mockRepo.On("GetByID", "track-1").Return(existing, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Track")).Return(nil).Once()

	updated, err := svc.UpdateTrack("track-1", &models.TrackUpdateRequest{Title: "New Title", Genre: "house"})
	assert.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "house", updated.Genre)
	assert.Equal(t, "https://bucket.example/key", updated.FilePath)
	assert.Equal(t, "https://bucket.example/key", updated.PreviewPath)
	mockRepo.AssertExpectations(t)
}

func TestTrackService_ListTracks_Paging(t *testing.T) {
	mockRepo := new(MockTrackRepository)
	mockStore := new(MockUploader)
	svc := services.NewTrackService(mockRepo, mockStore, nil)

	mockRepo.On("List", "owner-1", 10, 10).
		Return([]models.Track{{ID: "track-11"}}, int64(11), nil).Once()

	tracks, count, err := svc.ListTracks("owner-1", 2, 10)
	assert.NoError(t, err)
	assert.Len(t, tracks, 1)
	assert.Equal(t, int64(11), count)
	mockRepo.AssertExpectations(t)
}
