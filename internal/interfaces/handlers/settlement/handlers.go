package settlement

import (
	"strconv"

	settlementsvc "launchpad-backend/internal/application/settlement"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds dependencies for settlement endpoints.
type Handlers struct {
	Service *settlementsvc.Service
}

// ClaimRefund POST /api/v1/pools/:id/claim: backer collects their share of a refunded pool.
func (h *Handlers) ClaimRefund(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}

	payout, err := h.Service.ClaimRefund(c.Context(), actor, poolID)
	if err != nil {
		return settlementError(c, err)
	}
	return response.Success(c, "Refund claimed", fiber.Map{"amount": payout}, nil)
}

// Withdraw POST /api/v1/pools/:id/withdraw: admin releases raised funds to the creator.
func (h *Handlers) Withdraw(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Amount int64 `json:"amount"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	pool, err := h.Service.WithdrawToCreator(c.Context(), actor, poolID, body.Amount)
	if err != nil {
		return settlementError(c, err)
	}
	return response.Success(c, "Withdrawal sent", pool, nil)
}

func settlementError(c *fiber.Ctx, err error) error {
	switch err {
	case settlementsvc.ErrPoolNotFound, settlementsvc.ErrNoRecord:
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case settlementsvc.ErrOnlyOwner:
		return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
	case settlementsvc.ErrNotRefunded, settlementsvc.ErrNotVoting:
		return response.Error(c, err.Error(), fiber.StatusConflict, nil)
	case settlementsvc.ErrNothingToClaim, settlementsvc.ErrInsufficientBalance, settlementsvc.ErrInvalidAmount:
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
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
