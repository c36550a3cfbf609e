package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/zxcv616/WavHaven/internal/services"
)

// TokenHandler handles token issuance and refresh.
type TokenHandler struct {
	tokens   *services.TokenService
	validate *validator.Validate
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokens *services.TokenService) *TokenHandler {
	return &TokenHandler{
		tokens:   tokens,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the token routes with the Fiber app. These
// are public; they are how callers get authenticated in the first
// place.
func (h *TokenHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/token", h.HandleObtainPair)
	router.Post("/token/refresh", h.HandleRefresh)
}

// ObtainPairRequest is the body of POST /token/.
type ObtainPairRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleObtainPair checks credentials and issues a token pair.
func (h *TokenHandler) HandleObtainPair(c *fiber.Ctx) error {
	var req ObtainPairRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing token request body: %v", err)
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

	pair, err := h.tokens.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
		})
	}
	return c.JSON(pair)
}

// RefreshRequest is the body of POST /token/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// HandleRefresh exchanges a valid refresh token for a new pair.
func (h *TokenHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing refresh request body: %v", err)
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

	pair, err := h.tokens.Refresh(req.Refresh)
	if err != nil {
		log.Printf("Error refreshing token: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Invalid or expired refresh token",
		})
	}
	return c.JSON(pair)
}
