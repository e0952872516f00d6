package handlers

import (
	"log"
	"strings"

	"katalog/internal/models"
	"katalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration and login for catalog admins.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	auth := router.Group("/auth")
	auth.Post("/register", h.HandleRegister)
	auth.Post("/login", h.HandleLogin)
}

// HandleRegister creates a new admin account.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return sendResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}

	if err := h.validate.Struct(user); err != nil {
		errs := make(map[string]string)
		for _, e := range err.(validator.ValidationErrors) {
			errs[e.Field()] = "Field '" + e.Field() + "' failed on the '" + e.Tag() + "' rule"
		}
		return sendResponse(c, fiber.StatusBadRequest, "Validation failed", errs)
	}

	if err := h.authService.Register(&user); err != nil {
		log.Printf("Error registering user: %v", err)
		if strings.Contains(err.Error(), "already taken") || strings.Contains(err.Error(), "already registered") {
			return sendResponse(c, fiber.StatusConflict, err.Error(), nil)
		}
		return sendResponse(c, fiber.StatusInternalServerError, "Could not register user", nil)
	}

	user.Password = "" // never echo the hash
	return sendResponse(c, fiber.StatusCreated, "User registered successfully", user)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin checks credentials and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return sendResponse(c, fiber.StatusBadRequest, "Invalid request body", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return sendResponse(c, fiber.StatusBadRequest, "Username and password are required", nil)
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		return sendResponse(c, fiber.StatusUnauthorized, "Authentication failed", nil)
	}

	return sendResponse(c, fiber.StatusOK, "Login successful", fiber.Map{"token": token})
}
