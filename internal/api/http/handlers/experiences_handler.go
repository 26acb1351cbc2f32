package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/placement-portal/experience-service/internal/api/dto"
	"github.com/placement-portal/experience-service/internal/auth"
	"github.com/placement-portal/experience-service/internal/service"
	apperrors "github.com/placement-portal/experience-service/pkg/util/errorutil"
)

// ExperiencesHandler serves the experience catalogue.
type ExperiencesHandler struct {
	service *service.ExperienceService
	logger  *zap.Logger
}

// NewExperiencesHandler constructs handler.
func NewExperiencesHandler(experienceService *service.ExperienceService, logger *zap.Logger) *ExperiencesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExperiencesHandler{service: experienceService, logger: logger}
}

// List GET /api/experiences.
func (h *ExperiencesHandler) List(c *fiber.Ctx) error {
	filter, dropped := service.BuildExperienceFilter(parseExperienceQuery(c))
	if len(dropped) > 0 {
		h.logger.Debug("ignoring malformed filter parameters", zap.Strings("params", dropped))
	}
	items, err := h.service.ListExperiences(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewExperienceList(items)})
}

// Mine GET /api/experiences/mine.
func (h *ExperiencesHandler) Mine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	items, err := h.service.ListByOwner(c.UserContext(), principal.UserID())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewExperienceList(items)})
}

// Get GET /api/experiences/:id.
func (h *ExperiencesHandler) Get(c *fiber.Ctx) error {
	exp, err := h.service.GetExperience(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewExperienceResponse(exp)})
}

// Create POST /api/experiences.
func (h *ExperiencesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.ExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	exp, err := h.service.CreateExperience(c.UserContext(), principal.UserID(), service.ExperienceInput{
		StudentName:         req.StudentName,
		Company:             req.Company,
		Role:                req.Role,
		Package:             req.Package,
		Type:                req.Type,
		Department:          req.Department,
		CGPA:                req.CGPA,
		CGPAMatters:         req.CGPAMatters,
		Rounds:              req.Rounds,
		Questions:           req.Questions,
		QuestionTags:        req.QuestionTags,
		PreparationDuration: req.PreparationDuration,
		Resources:           req.Resources,
		Timeline:            req.Timeline,
		DifficultyRating:    req.DifficultyRating,
		WouldRecommend:      req.WouldRecommend,
		GotSelected:         req.GotSelected,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewExperienceResponse(exp)})
}

// Update PUT /api/experiences/:id.
func (h *ExperiencesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.ExperiencePatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	exp, err := h.service.UpdateExperience(c.UserContext(), principal.UserID(), c.Params("id"), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewExperienceResponse(exp)})
}

// Delete DELETE /api/experiences/:id.
func (h *ExperiencesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	result, err := h.service.DeleteExperience(c.UserContext(), principal.UserID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DeleteResponse{Message: "Experience deleted successfully", DeletedID: result.DeletedID}})
}

func parseExperienceQuery(c *fiber.Ctx) service.ExperienceQuery {
	return service.ExperienceQuery{
		Company:    c.Query("company"),
		Department: c.Query("department"),
		Type:       c.Query("type"),
		MinPackage: c.Query("minPackage"),
		MaxPackage: c.Query("maxPackage"),
		MinLPA:     c.Query("minLPA"),
		MaxLPA:     c.Query("maxLPA"),
		Selected:   c.Query("selected"),
	}
}
