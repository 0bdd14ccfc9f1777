package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/middleware"
	"github.com/Ghufran-ali1/Grocery-Store-Server/internal/services"
)

// AuthHandler handles HTTP requests for authentication and admin accounts.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Operations implements OperationSet.
func (h *AuthHandler) Operations() map[string]Operation {
	return map[string]Operation{
		"signup":        {Name: "signup", Method: fiber.MethodPost, Handle: ignoreSecondary(h.HandleSignup)},
		"login":         {Name: "login", Method: fiber.MethodPost, Handle: ignoreSecondary(h.HandleLogin)},
		"admin-details": {Name: "admin-details", Method: fiber.MethodGet, Auth: true, Handle: ignoreSecondary(h.HandleAdminDetails)},
		"admins":        {Name: "list-admins", Method: fiber.MethodGet, Handle: ignoreSecondary(h.HandleListAdmins)},
	}
}

// HandleSignup registers a new admin. Only the id and username are echoed back.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req services.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	user, err := h.authService.Signup(c.UserContext(), req)
	if err != nil {
		log.Printf("Error registering user %s: %v", req.Username, err)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  fiber.StatusCreated,
		"message": "Signup successful.",
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin checks credentials and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(err)
	}

	user, token, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("Failed login for user %s", req.Username)
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid username or password.")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "Admin login was successful.",
		"user":    user,
		"token":   token,
	})
}

// HandleAdminDetails returns the account the bearer token was issued to.
func (h *AuthHandler) HandleAdminDetails(c *fiber.Ctx) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Authorization header is missing")
	}

	user, err := h.authService.AdminDetails(c.UserContext(), claims)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Admin user not found.")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "Admin details fetched successfully.",
		"user":    user,
	})
}

// HandleListAdmins returns every admin account.
func (h *AuthHandler) HandleListAdmins(c *fiber.Ctx) error {
	users, err := h.authService.ListAdmins(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func ignoreSecondary(fn fiber.Handler) func(c *fiber.Ctx, secondary string) error {
	return func(c *fiber.Ctx, _ string) error {
		return fn(c)
	}
}
