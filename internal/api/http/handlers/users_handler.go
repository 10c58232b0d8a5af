package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/interview-service/internal/api/dto"
	"github.com/spec-kit/interview-service/internal/domain"
	"github.com/spec-kit/interview-service/internal/service"
	apperrors "github.com/spec-kit/interview-service/pkg/util"
)

// UsersHandler manages user directory endpoints. These are called after the
// identity provider has verified the caller, so they carry no auth of their
// own.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Sync POST /users/sync.
func (h *UsersHandler) Sync(c *fiber.Ctx) error {
	var req dto.SyncUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.UserSyncInput{
		Name:       req.Name,
		Email:      req.Email,
		ExternalID: req.ExternalID,
		Image:      req.Image,
	}
	if err := h.service.Sync(c.UserContext(), input); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Onboard POST /users/onboard.
func (h *UsersHandler) Onboard(c *fiber.Ctx) error {
	var req dto.OnboardUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.UserOnboardInput{
		Name:       req.Name,
		Email:      req.Email,
		ExternalID: req.ExternalID,
		Image:      req.Image,
		Role:       domain.UserRole(req.Role),
	}
	user, err := h.service.UpsertWithRole(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// List GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetByExternalID GET /users/:externalId. A missing entry yields null.
func (h *UsersHandler) GetByExternalID(c *fiber.Ctx) error {
	user, err := h.service.GetByExternalID(c.UserContext(), c.Params("externalId"))
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		ExternalID: user.ExternalID,
		Name:       user.Name,
		Email:      user.Email,
		Image:      user.Image,
		Role:       string(user.Role),
		CreatedAt:  user.CreatedAt,
	}
}
