package pools

import (
	"strconv"

	poolsvc "launchpad-backend/internal/application/pools"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds dependencies for pool endpoints.
type Handlers struct {
	Service *poolsvc.Service
}

// CreatePool POST /api/v1/pools: stake collateral, open a pool in INIT.
func (h *Handlers) CreatePool(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var body struct {
		CampaignID        string `json:"campaign_id"`
		TokenID           string `json:"token_id"`
		MinMultiplePledge int64  `json:"min_multiple_pledge"`
		TargetFunding     int64  `json:"target_funding"`
		StakingAmount     int64  `json:"staking_amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	pool, err := h.Service.CreatePool(c.Context(), actor, poolsvc.CreateInput{
		CampaignID:        body.CampaignID,
		TokenID:           body.TokenID,
		MinMultiplePledge: body.MinMultiplePledge,
		TargetFunding:     body.TargetFunding,
		StakingAmount:     body.StakingAmount,
	})
	if err != nil {
		switch err {
		case poolsvc.ErrCampaignRequired, poolsvc.ErrTargetRequired, poolsvc.ErrStakeTooLow:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case poolsvc.ErrTokenNotSupported:
			return response.Error(c, err.Error(), fiber.StatusUnprocessableEntity, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Pool created", pool, nil)
}

// GetPool GET /api/v1/pools/:id
func (h *Handlers) GetPool(c *fiber.Ctx) error {
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}
	pool, err := h.Service.GetPool(c.Context(), poolID)
	if err != nil {
		if err == poolsvc.ErrPoolNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Pool retrieved", pool, nil)
}

// ListPools GET /api/v1/pools: optional ?status= filter.
func (h *Handlers) ListPools(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		if !domain.IsValidStatus(domain.Status(status)) {
			return response.Error(c, "Invalid status", fiber.StatusBadRequest, nil)
		}
		pools, err := h.Service.GetPoolsByStatus(c.Context(), domain.Status(status))
		if err != nil {
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
		return response.Success(c, "Pools retrieved", pools, nil)
	}
	pools, err := h.Service.GetAllPools(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Pools retrieved", pools, nil)
}

// GetUserRecords GET /api/v1/pools/:id/records: per-backer ledger with voting power.
func (h *Handlers) GetUserRecords(c *fiber.Ctx) error {
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}
	records, err := h.Service.GetUserRecords(c.Context(), poolID)
	if err != nil {
		if err == poolsvc.ErrPoolNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Records retrieved", records, nil)
}

// GetCreatorBalance GET /api/v1/pools/:id/balance: funds currently available to the creator.
func (h *Handlers) GetCreatorBalance(c *fiber.Ctx) error {
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}
	balance, err := h.Service.GetCreatorBalance(c.Context(), poolID)
	if err != nil {
		if err == poolsvc.ErrPoolNotFound {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Balance retrieved", fiber.Map{"balance": balance}, nil)
}

func parsePoolID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
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
