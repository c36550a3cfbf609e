package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/zxcv616/WavHaven/internal/models"
	"github.com/zxcv616/WavHaven/internal/repositories"
	"github.com/zxcv616/WavHaven/internal/services"
)

// LicenseHandler handles HTTP requests for licenses.
type LicenseHandler struct {
	service  *services.LicenseService
	validate *validator.Validate
}

// NewLicenseHandler creates a new LicenseHandler.
func NewLicenseHandler(service *services.LicenseService) *LicenseHandler {
	return &LicenseHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the license routes with the Fiber app.
func (h *LicenseHandler) RegisterRoutes(router fiber.Router) {
	licenseRoutes := router.Group("/licenses")
	licenseRoutes.Get("/", h.HandleGetLicenses)
	licenseRoutes.Post("/", h.HandleCreateLicense)
	licenseRoutes.Get("/:id", h.HandleGetLicenseByID)
	licenseRoutes.Put("/:id", h.HandleUpdateLicense)
	licenseRoutes.Patch("/:id", h.HandleUpdateLicense)
	licenseRoutes.Delete("/:id", h.HandleDeleteLicense)
}

// HandleCreateLicense creates a new license for an existing track.
func (h *LicenseHandler) HandleCreateLicense(c *fiber.Ctx) error {
	var req models.LicenseRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing license request body: %v", err)
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

	license, err := h.service.CreateLicense(&req)
	if err != nil {
		log.Printf("Error creating license: %v", err)
		if errors.Is(err, services.ErrTrackMissing) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Referenced track does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create license",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(license)
}

// HandleGetLicenses retrieves all licenses.
func (h *LicenseHandler) HandleGetLicenses(c *fiber.Ctx) error {
	licenses, err := h.service.GetAllLicenses()
	if err != nil {
		log.Printf("Error getting all licenses: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve licenses",
		})
	}
	return c.JSON(licenses)
}

// HandleGetLicenseByID retrieves a single license by ID.
func (h *LicenseHandler) HandleGetLicenseByID(c *fiber.Ctx) error {
	licenseID := c.Params("id")
	license, err := h.service.GetLicenseByID(licenseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("License with ID %s not found", licenseID),
			})
		}
		log.Printf("Error getting license by ID %s: %v", licenseID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve license",
		})
	}
	return c.JSON(license)
}

// HandleUpdateLicense updates an existing license.
func (h *LicenseHandler) HandleUpdateLicense(c *fiber.Ctx) error {
	licenseID := c.Params("id")
	var req models.LicenseRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing license update body: %v", err)
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

	license, err := h.service.UpdateLicense(licenseID, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("License with ID %s not found", licenseID),
			})
		}
		if errors.Is(err, services.ErrTrackMissing) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Referenced track does not exist",
			})
		}
		log.Printf("Error updating license %s: %v", licenseID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update license",
		})
	}
	return c.JSON(license)
}

// HandleDeleteLicense deletes a license.
func (h *LicenseHandler) HandleDeleteLicense(c *fiber.Ctx) error {
	licenseID := c.Params("id")
	if err := h.service.DeleteLicense(licenseID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("License with ID %s not found", licenseID),
			})
		}
		log.Printf("Error deleting license %s: %v", licenseID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete license",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
