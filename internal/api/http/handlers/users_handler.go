package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/placement-portal/experience-service/internal/api/dto"
	"github.com/placement-portal/experience-service/internal/auth"
	"github.com/placement-portal/experience-service/internal/service"
	apperrors "github.com/placement-portal/experience-service/pkg/util/errorutil"
)

// UsersHandler exposes auth and profile endpoints for students.
type UsersHandler struct {
	auth     *service.AuthService
	profiles *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService, profiles *service.UserService) *UsersHandler {
	return &UsersHandler{auth: authService, profiles: profiles}
}

// Register handles POST /api/auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		Department:     req.Department,
		GraduationYear: req.GraduationYear,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": authPayload(result)})
}

// Login handles POST /api/auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authPayload(result)})
}

// Profile handles GET /api/auth/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	user, err := h.auth.Profile(c.UserContext(), principal.UserID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Me handles GET /api/users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	return h.respondProfile(c, principal.UserID())
}

// GetByID handles GET /api/users/:id.
func (h *UsersHandler) GetByID(c *fiber.Ctx) error {
	return h.respondProfile(c, c.Params("id"))
}

func (h *UsersHandler) respondProfile(c *fiber.Ctx, userID string) error {
	profile, err := h.profiles.GetProfile(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProfileResponse{
		User:            dto.NewUserResponse(profile.User),
		Experiences:     dto.NewExperienceList(profile.Experiences),
		ExperienceCount: profile.ExperienceCount,
	}})
}

func authPayload(result *service.AuthResult) fiber.Map {
	return fiber.Map{
		"user": dto.NewUserResponse(result.User),
		"auth": dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
	}
}
