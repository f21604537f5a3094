package admin

import (
	adminsvc "launchpad-backend/internal/application/admin"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds dependencies for engine settings endpoints.
type Handlers struct {
	Service *adminsvc.Service
}

// GetSettings GET /api/v1/settings
func (h *Handlers) GetSettings(c *fiber.Ctx) error {
	settings, err := h.Service.GetSettings(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Settings retrieved", settings, nil)
}

// SetMinStaking PUT /api/v1/settings/min-staking
func (h *Handlers) SetMinStaking(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body struct {
		Amount int64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	settings, err := h.Service.SetMinStaking(c.Context(), actor, body.Amount)
	if err != nil {
		return adminError(c, err)
	}
	return response.Success(c, "Minimum staking updated", settings, nil)
}

// SetRefundPercent PUT /api/v1/settings/refund-percent
func (h *Handlers) SetRefundPercent(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body struct {
		Percent int `json:"percent"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	settings, err := h.Service.SetRefundPercent(c.Context(), actor, body.Percent)
	if err != nil {
		return adminError(c, err)
	}
	return response.Success(c, "Refund percentage updated", settings, nil)
}

// ChangeOwner PUT /api/v1/settings/owner
func (h *Handlers) ChangeOwner(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body struct {
		OwnerID string `json:"owner_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}
	newOwner, err := uuid.Parse(body.OwnerID)
	if err != nil {
		return response.Error(c, adminsvc.ErrInvalidOwner.Error(), fiber.StatusBadRequest, nil)
	}

	settings, err := h.Service.ChangeOwner(c.Context(), actor, newOwner)
	if err != nil {
		return adminError(c, err)
	}
	return response.Success(c, "Owner updated", settings, nil)
}

func adminError(c *fiber.Ctx, err error) error {
	switch err {
	case adminsvc.ErrOnlyOwner:
		return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
	case adminsvc.ErrPercentRange, adminsvc.ErrMinStakingFloor, adminsvc.ErrInvalidOwner:
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}

func sessionActor(c *fiber.Ctx) (domain.Actor, bool) {
	u := middleware.GetUser(c)
	m, ok := u.(map[string]interface{})
	if !ok {
		return domain.Actor{}, false
	}
	idStr, _ := m["user_id"].(string)
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return domain.Actor{}, false
	}
	role, _ := m["role"].(string)
	return domain.Actor{UserID: userID, Role: role}, true
}
