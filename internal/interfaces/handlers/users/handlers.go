package users

import (
	usersvc "launchpad-backend/internal/application/users"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds dependencies for user management endpoints.
type Handlers struct {
	Service *usersvc.Service
}

// CreateUser POST /api/v1/users: register an account.
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	var body usersvc.CreateInput
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.CreateUser(c.Context(), body)
	if err != nil {
		switch err {
		case usersvc.ErrMissingFields, usersvc.ErrInvalidEmail, usersvc.ErrInvalidPassword,
			usersvc.ErrInvalidFullname, usersvc.ErrInvalidRole:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case usersvc.ErrEmailTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "User created", fiber.Map{
		"user_id":  user.UserID.String(),
		"fullname": user.Fullname,
		"email":    user.Email,
		"role":     user.Role,
	}, nil)
}

// UpdateRole PUT /api/v1/users/:id/role: admin changes an account role.
func (h *Handlers) UpdateRole(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.UpdateRole(c.Context(), userID, body.Role)
	if err != nil {
		switch err {
		case usersvc.ErrInvalidRole:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case usersvc.ErrUserNotFound:
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Role updated", fiber.Map{
		"user_id": user.UserID.String(),
		"role":    user.Role,
	}, nil)
}
