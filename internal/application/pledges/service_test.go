package pledges

import (
	"context"
	"strconv"
	"testing"
	"time"

	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPledgeTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.EnsureSettings(db, uuid.New()))
	require.NoError(t, db.Create(&domain.Asset{TokenID: "token.near"}).Error)
	return &Service{DB: db}, db
}

func openFundingPool(t *testing.T, db *gorm.DB) *domain.Pool {
	start := time.Now().Add(-time.Hour)
	end := time.Now().Add(24 * time.Hour)
	pool := &domain.Pool{
		CampaignID:      "campaign-1",
		CreatorID:       uuid.New(),
		StakingAmount:   1_000_000,
		Status:          domain.StatusFunding,
		TokenID:         "token.near",
		TargetFunding:   1000,
		TimeInit:        time.Now().Add(-48 * time.Hour),
		TimeStartPledge: &start,
		TimeEndPledge:   &end,
	}
	require.NoError(t, db.Create(pool).Error)
	return pool
}

func TestHandleIncomingTransfer_Accepts(t *testing.T) {
	svc, db := setupPledgeTest(t)
	pool := openFundingPool(t, db)
	backer := uuid.New()
	memo := strconv.FormatInt(pool.PoolID, 10)

	res, err := svc.HandleIncomingTransfer(context.Background(), "token.near", backer.String(), 500, memo)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, int64(0), res.RefundAmount)

	// second deposit accumulates on the same record
	res, err = svc.HandleIncomingTransfer(context.Background(), "token.near", backer.String(), 300, memo)
	require.NoError(t, err)
	assert.True(t, res.Accepted)

	var record domain.UserDepositRecord
	require.NoError(t, db.Where("pool_id = ? AND depositor_id = ?", pool.PoolID, backer).First(&record).Error)
	assert.Equal(t, int64(800), record.Amount)
	assert.Equal(t, float64(0), record.VotingPower)

	var reloaded domain.Pool
	require.NoError(t, db.First(&reloaded, "pool_id = ?", pool.PoolID).Error)
	assert.Equal(t, int64(800), reloaded.TotalBalance)
}

func TestHandleIncomingTransfer_LedgerMatchesBalance(t *testing.T) {
	svc, db := setupPledgeTest(t)
	pool := openFundingPool(t, db)
	memo := strconv.FormatInt(pool.PoolID, 10)

	for _, amt := range []int64{100, 250, 42} {
		res, err := svc.HandleIncomingTransfer(context.Background(), "token.near", uuid.New().String(), amt, memo)
		require.NoError(t, err)
		require.True(t, res.Accepted)
	}

	var sum int64
	require.NoError(t, db.Model(&domain.UserDepositRecord{}).Where("pool_id = ?", pool.PoolID).
		Select("COALESCE(SUM(amount), 0)").Scan(&sum).Error)
	var reloaded domain.Pool
	require.NoError(t, db.First(&reloaded, "pool_id = ?", pool.PoolID).Error)
	assert.Equal(t, reloaded.TotalBalance, sum)
}

func TestHandleIncomingTransfer_GuardsRefundFullAmount(t *testing.T) {
	svc, db := setupPledgeTest(t)
	pool := openFundingPool(t, db)
	memo := strconv.FormatInt(pool.PoolID, 10)
	backer := uuid.New().String()

	closedStart := time.Now().Add(-72 * time.Hour)
	closedEnd := time.Now().Add(-time.Hour)
	closed := &domain.Pool{
		CampaignID: "campaign-2", CreatorID: uuid.New(), StakingAmount: 1_000_000,
		Status: domain.StatusFunding, TokenID: "token.near", TargetFunding: 1000,
		TimeInit: time.Now(), TimeStartPledge: &closedStart, TimeEndPledge: &closedEnd,
	}
	require.NoError(t, db.Create(closed).Error)

	otherToken := &domain.Asset{TokenID: "other.near"}
	require.NoError(t, db.Create(otherToken).Error)

	approved := &domain.Pool{
		CampaignID: "campaign-3", CreatorID: uuid.New(), StakingAmount: 1_000_000,
		Status: domain.StatusApproved, TokenID: "token.near", TargetFunding: 1000, TimeInit: time.Now(),
	}
	require.NoError(t, db.Create(approved).Error)

	cases := []struct {
		name    string
		tokenID string
		sender  string
		amount  int64
		memo    string
	}{
		{"non positive amount", "token.near", backer, 0, memo},
		{"unknown sender", "token.near", "not-a-uuid", 100, memo},
		{"bad memo", "token.near", backer, 100, "abc"},
		{"unregistered token", "ghost.near", backer, 100, memo},
		{"missing pool", "token.near", backer, 100, "99999"},
		{"pool not funding", "token.near", backer, 100, strconv.FormatInt(approved.PoolID, 10)},
		{"outside window", "token.near", backer, 100, strconv.FormatInt(closed.PoolID, 10)},
		{"wrong token for pool", "other.near", backer, 100, memo},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.HandleIncomingTransfer(context.Background(), tc.tokenID, tc.sender, tc.amount, tc.memo)
			require.NoError(t, err)
			assert.False(t, res.Accepted)
			assert.Equal(t, tc.amount, res.RefundAmount)
			assert.NotEmpty(t, res.Reason)
		})
	}

	// nothing was booked by any refused transfer
	var reloaded domain.Pool
	require.NoError(t, db.First(&reloaded, "pool_id = ?", pool.PoolID).Error)
	assert.Equal(t, int64(0), reloaded.TotalBalance)
	var count int64
	require.NoError(t, db.Model(&domain.UserDepositRecord{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
