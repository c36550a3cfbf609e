package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/zxcv616/WavHaven/internal/models"
	"github.com/zxcv616/WavHaven/internal/repositories"
	"github.com/zxcv616/WavHaven/internal/services"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// TrackHandler handles HTTP requests for tracks.
type TrackHandler struct {
	service  *services.TrackService
	validate *validator.Validate
}

// NewTrackHandler creates a new TrackHandler.
func NewTrackHandler(service *services.TrackService) *TrackHandler {
	return &TrackHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the track routes with the Fiber app.
func (h *TrackHandler) RegisterRoutes(router fiber.Router) {
	trackRoutes := router.Group("/tracks")
	trackRoutes.Get("/", h.HandleListTracks)
	trackRoutes.Post("/", h.HandleUploadTrack)
	trackRoutes.Get("/:id", h.HandleGetTrackByID)
	trackRoutes.Put("/:id", h.HandleUpdateTrack)
	trackRoutes.Patch("/:id", h.HandleUpdateTrack)
	trackRoutes.Delete("/:id", h.HandleDeleteTrack)
}

// HandleUploadTrack accepts a multipart upload (file field "track"
// plus metadata fields) and runs the upload coordinator. The owner is
// the authenticated caller; any file_path/preview_path values in the
// form are ignored because the metadata struct has no such fields.
func (h *TrackHandler) HandleUploadTrack(c *fiber.Ctx) error {
	ownerID, ok := c.Locals("user_id").(string)
	if !ok || ownerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	fileHeader, err := c.FormFile("track")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file uploaded.",
		})
	}

	meta := models.TrackMetadata{
		Title: c.FormValue("title"),
		Genre: c.FormValue("genre"),
		Key:   c.FormValue("key"),
	}
	if bpmValue := c.FormValue("bpm"); bpmValue != "" {
		bpm, err := strconv.Atoi(bpmValue)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "bpm must be an integer",
			})
		}
		meta.BPM = &bpm
	}

	if err := h.validate.Struct(meta); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No file uploaded.",
		})
	}
	defer file.Close()

	track, err := h.service.Upload(c.Context(), ownerID, file, fileHeader.Size,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), &meta)
	if err != nil {
		log.Printf("Error uploading track for user %s: %v", ownerID, err)
		switch {
		case errors.Is(err, services.ErrNoFile):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "No file uploaded.",
			})
		case errors.Is(err, services.ErrStorageCredentials):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Credentials not available.",
			})
		case errors.Is(err, services.ErrStorageClient):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Storage provider rejected the upload.",
			})
		case errors.Is(err, services.ErrStorageUnknown):
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Storage upload failed.",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not create track",
			})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(track)
}

// HandleListTracks returns a paginated track listing, optionally
// filtered by owner via the user_id query parameter.
func (h *TrackHandler) HandleListTracks(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	tracks, count, err := h.service.ListTracks(userID, page, pageSize)
	if err != nil {
		log.Printf("Error listing tracks: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve tracks",
		})
	}

	envelope := models.PaginatedTracks{
		Count:   count,
		Results: tracks,
	}
	if int64(page*pageSize) < count {
		next := pageURL(c, userID, page+1, pageSize)
		envelope.Next = &next
	}
	if page > 1 {
		previous := pageURL(c, userID, page-1, pageSize)
		envelope.Previous = &previous
	}
	return c.JSON(envelope)
}

// pageURL rebuilds the listing URL for a given page.
func pageURL(c *fiber.Ctx, userID string, page, pageSize int) string {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	if userID != "" {
		query.Set("user_id", userID)
	}
	return fmt.Sprintf("%s%s?%s", c.BaseURL(), c.Path(), query.Encode())
}

// HandleGetTrackByID retrieves a single track by ID.
func (h *TrackHandler) HandleGetTrackByID(c *fiber.Ctx) error {
	trackID := c.Params("id")
	track, err := h.service.GetTrack(trackID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Track with ID %s not found", trackID),
			})
		}
		log.Printf("Error getting track by ID %s: %v", trackID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve track",
		})
	}
	return c.JSON(track)
}

// HandleUpdateTrack updates a track's metadata. File paths cannot be
// changed here.
func (h *TrackHandler) HandleUpdateTrack(c *fiber.Ctx) error {
	trackID := c.Params("id")
	var req models.TrackUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing track update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	track, err := h.service.UpdateTrack(trackID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Track with ID %s not found", trackID),
			})
		}
		log.Printf("Error updating track %s: %v", trackID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update track",
		})
	}
	return c.JSON(track)
}

// HandleDeleteTrack deletes a track and its licenses.
func (h *TrackHandler) HandleDeleteTrack(c *fiber.Ctx) error {
	trackID := c.Params("id")
	if err := h.service.DeleteTrack(trackID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Track with ID %s not found", trackID),
			})
		}
		log.Printf("Error deleting track %s: %v", trackID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete track",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
