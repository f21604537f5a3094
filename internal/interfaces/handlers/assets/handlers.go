package assets

import (
	assetsvc "launchpad-backend/internal/application/assets"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds dependencies for asset registry endpoints.
type Handlers struct {
	Service *assetsvc.Service
}

// AddToken POST /api/v1/assets: whitelist a token for pledges.
func (h *Handlers) AddToken(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	var body struct {
		TokenID string `json:"token_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	asset, err := h.Service.AddToken(c.Context(), actor, body.TokenID)
	if err != nil {
		switch err {
		case assetsvc.ErrOnlyOwner:
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case assetsvc.ErrTokenIDMissing:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Token registered", asset, nil)
}

// RemoveToken DELETE /api/v1/assets/:token_id: accepted but never applied.
func (h *Handlers) RemoveToken(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	tokenID := c.Params("token_id")

	if err := h.Service.RemoveToken(c.Context(), actor, tokenID); err != nil {
		switch err {
		case assetsvc.ErrOnlyOwner:
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case assetsvc.ErrTokenIDMissing:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Token removal recorded", nil, nil)
}

// ListAssets GET /api/v1/assets
func (h *Handlers) ListAssets(c *fiber.Ctx) error {
	assets, err := h.Service.ListAssets(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Assets retrieved", assets, nil)
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
