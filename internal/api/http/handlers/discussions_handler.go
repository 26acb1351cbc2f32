package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/placement-portal/experience-service/internal/api/dto"
	"github.com/placement-portal/experience-service/internal/auth"
	"github.com/placement-portal/experience-service/internal/service"
	apperrors "github.com/placement-portal/experience-service/pkg/util/errorutil"
)

// DiscussionsHandler serves per-company discussion threads.
type DiscussionsHandler struct {
	service *service.DiscussionService
}

// NewDiscussionsHandler constructs handler.
func NewDiscussionsHandler(discussionService *service.DiscussionService) *DiscussionsHandler {
	return &DiscussionsHandler{service: discussionService}
}

// List GET /api/discussions/:company.
func (h *DiscussionsHandler) List(c *fiber.Ctx) error {
	thread, err := h.service.ListByCompany(c.UserContext(), companyParam(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDiscussionList(thread)})
}

// Post POST /api/discussions/:company.
func (h *DiscussionsHandler) Post(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.DiscussionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	d, err := h.service.Post(c.UserContext(), principal.UserID(), companyParam(c), req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDiscussionResponse(d)})
}

// Update PUT /api/discussions/:id.
func (h *DiscussionsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.DiscussionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	d, err := h.service.Update(c.UserContext(), principal.UserID(), c.Params("id"), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDiscussionResponse(d)})
}

// Delete DELETE /api/discussions/:id.
func (h *DiscussionsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	result, err := h.service.Delete(c.UserContext(), principal.UserID(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DeleteResponse{Message: "Discussion deleted successfully", DeletedID: result.DeletedID}})
}

// companyParam returns the path segment decoded, so "Goldman%20Sachs"
// addresses the "Goldman Sachs" thread. The value is copied because it
// outlives the request once stored.
func companyParam(c *fiber.Ctx) string {
	raw := utils.CopyString(c.Params("company"))
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
