package settlement

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	settlementsvc "launchpad-backend/internal/application/settlement"
	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noopBridge struct{}

func (noopBridge) Transfer(ctx context.Context, tokenID, recipient string, amount int64, poolID int64) error {
	return nil
}

func (noopBridge) TransferWithdrawal(ctx context.Context, tokenID, recipient string, amount int64, poolID int64) error {
	return nil
}

func setupSettlementHandlers(t *testing.T) (*Handlers, *gorm.DB, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	owner := uuid.New()
	require.NoError(t, database.EnsureSettings(db, owner))
	h := &Handlers{Service: &settlementsvc.Service{DB: db, Bridge: noopBridge{}}}
	return h, db, owner
}

func settlementApp(h *Handlers, userID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals("user", map[string]interface{}{"user_id": userID, "role": "backer"})
		}
		return c.Next()
	})
	app.Post("/pools/:id/claim", h.ClaimRefund)
	app.Post("/pools/:id/withdraw", h.Withdraw)
	return app
}

func TestClaimRefund_OverHTTP(t *testing.T) {
	h, db, _ := setupSettlementHandlers(t)
	backer := uuid.New()
	app := settlementApp(h, backer.String())

	pool := &domain.Pool{CampaignID: "c", CreatorID: uuid.New(), Status: domain.StatusRefunded, TokenID: "token.near", TargetFunding: 1000, StakingAmount: 1_000_000, TotalBalance: 1000, TimeInit: time.Now()}
	require.NoError(t, db.Create(pool).Error)
	require.NoError(t, db.Create(&domain.UserDepositRecord{PoolID: pool.PoolID, DepositorID: backer, Amount: 600, VotingPower: 60}).Error)

	req := httptest.NewRequest("POST", "/pools/1/claim", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	data, _ := result["data"].(map[string]interface{})
	assert.Equal(t, float64(600), data["amount"])

	// a second claim is rejected
	resp, err = app.Test(httptest.NewRequest("POST", "/pools/1/claim", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestWithdraw_OwnerOnly(t *testing.T) {
	h, db, owner := setupSettlementHandlers(t)
	pool := &domain.Pool{CampaignID: "c", CreatorID: uuid.New(), Status: domain.StatusVoting, TokenID: "token.near", TargetFunding: 1000, StakingAmount: 1_000_000, TotalBalance: 1000, TimeInit: time.Now()}
	require.NoError(t, db.Create(pool).Error)

	body, _ := json.Marshal(map[string]interface{}{"amount": 400})

	app := settlementApp(h, uuid.New().String())
	req := httptest.NewRequest("POST", "/pools/1/withdraw", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	app = settlementApp(h, owner.String())
	req = httptest.NewRequest("POST", "/pools/1/withdraw", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded domain.Pool
	require.NoError(t, db.First(&reloaded, "pool_id = ?", pool.PoolID).Error)
	assert.Equal(t, int64(600), reloaded.TotalBalance)
}
