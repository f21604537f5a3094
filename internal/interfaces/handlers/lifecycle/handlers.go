package lifecycle

import (
	"strconv"
	"time"

	lifecyclesvc "launchpad-backend/internal/application/lifecycle"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/middleware"
	"launchpad-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers holds dependencies for pool lifecycle endpoints.
type Handlers struct {
	Service *lifecyclesvc.Service
}

// Review POST /api/v1/pools/:id/review: admin approves or rejects a submitted pool.
func (h *Handlers) Review(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Approve bool `json:"approve"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	pool, err := h.Service.ReviewPool(c.Context(), actor, poolID, body.Approve)
	if err != nil {
		return lifecycleError(c, err)
	}
	return response.Success(c, "Pool reviewed", pool, nil)
}

// CheckTimeout POST /api/v1/pools/:id/check-timeout: anyone may expire a stale submission.
func (h *Handlers) CheckTimeout(c *fiber.Ctx) error {
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}
	pool, err := h.Service.CheckInitTimeout(c.Context(), poolID)
	if err != nil {
		return lifecycleError(c, err)
	}
	return response.Success(c, "Pool expired and rejected", pool, nil)
}

// Cancel POST /api/v1/pools/:id/cancel: creator withdraws a pool still under review.
func (h *Handlers) Cancel(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}
	pool, err := h.Service.CancelPool(c.Context(), actor, poolID)
	if err != nil {
		return lifecycleError(c, err)
	}
	return response.Success(c, "Pool canceled", pool, nil)
}

// SetFundingWindow POST /api/v1/pools/:id/funding-window: creator opens the pledge window.
func (h *Handlers) SetFundingWindow(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}
	var body struct {
		StartAt      int64 `json:"start_at"`
		DurationDays int64 `json:"duration_days"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	pool, err := h.Service.SetFundingWindow(c.Context(), actor, poolID, time.Unix(body.StartAt, 0), body.DurationDays)
	if err != nil {
		return lifecycleError(c, err)
	}
	return response.Success(c, "Funding window set", pool, nil)
}

// CloseFunding POST /api/v1/pools/:id/close: admin settles a pool after its window ends.
func (h *Handlers) CloseFunding(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}
	var body struct {
		IsWaitingFunding bool `json:"is_waiting_funding"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	pool, err := h.Service.CloseFunding(c.Context(), actor, poolID, body.IsWaitingFunding)
	if err != nil {
		return lifecycleError(c, err)
	}
	return response.Success(c, "Funding closed", pool, nil)
}

// CreatorDecide POST /api/v1/pools/:id/decision: creator accepts or declines a near-target raise.
func (h *Handlers) CreatorDecide(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Accept bool `json:"accept"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	pool, err := h.Service.CreatorDecide(c.Context(), actor, poolID, body.Accept)
	if err != nil {
		return lifecycleError(c, err)
	}
	return response.Success(c, "Decision recorded", pool, nil)
}

// ForceStatus PUT /api/v1/pools/:id/status: admin override, bypasses transition rules.
func (h *Handlers) ForceStatus(c *fiber.Ctx) error {
	actor, ok := sessionActor(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	poolID, err := parsePoolID(c)
	if err != nil {
		return response.Error(c, "Invalid pool id", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Missing required fields", fiber.StatusBadRequest, nil)
	}

	pool, err := h.Service.ForceSetStatus(c.Context(), actor, poolID, domain.Status(body.Status))
	if err != nil {
		return lifecycleError(c, err)
	}
	return response.Success(c, "Pool status updated", pool, nil)
}

func lifecycleError(c *fiber.Ctx, err error) error {
	switch err {
	case lifecyclesvc.ErrPoolNotFound:
		return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
	case lifecyclesvc.ErrOnlyOwner, lifecyclesvc.ErrOnlyCreator:
		return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
	case lifecyclesvc.ErrNotInit, lifecyclesvc.ErrNotApproved, lifecyclesvc.ErrNotFunding,
		lifecyclesvc.ErrNotWaiting, lifecyclesvc.ErrFundingNotEnded, lifecyclesvc.ErrTimeoutNotReached:
		return response.Error(c, err.Error(), fiber.StatusConflict, nil)
	case lifecyclesvc.ErrZeroDuration, lifecyclesvc.ErrStartNotFuture, lifecyclesvc.ErrInvalidStatus:
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
