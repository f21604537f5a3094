package pools

import (
	"context"
	"testing"

	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPoolsTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.EnsureSettings(db, uuid.New()))
	require.NoError(t, db.Create(&domain.Asset{TokenID: "token.near"}).Error)
	return &Service{DB: db}, db
}

func TestCreatePool(t *testing.T) {
	svc, db := setupPoolsTest(t)
	creator := domain.Actor{UserID: uuid.New(), Role: "creator"}

	pool, err := svc.CreatePool(context.Background(), creator, CreateInput{
		CampaignID:    "campaign-1",
		TokenID:       "token.near",
		TargetFunding: 1000,
		StakingAmount: domain.DefaultMinStaking,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInit, pool.Status)
	assert.Equal(t, creator.UserID, pool.CreatorID)
	assert.Equal(t, int64(0), pool.TotalBalance)
	assert.False(t, pool.TimeInit.IsZero())

	var events []domain.PoolEvent
	require.NoError(t, db.Where("pool_id = ?", pool.PoolID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventPoolCreated, events[0].EventType)
}

func TestCreatePool_Guards(t *testing.T) {
	svc, _ := setupPoolsTest(t)
	creator := domain.Actor{UserID: uuid.New()}

	_, err := svc.CreatePool(context.Background(), creator, CreateInput{TokenID: "token.near", TargetFunding: 1000, StakingAmount: domain.DefaultMinStaking})
	assert.ErrorIs(t, err, ErrCampaignRequired)

	_, err = svc.CreatePool(context.Background(), creator, CreateInput{CampaignID: "c", TokenID: "token.near", StakingAmount: domain.DefaultMinStaking})
	assert.ErrorIs(t, err, ErrTargetRequired)

	_, err = svc.CreatePool(context.Background(), creator, CreateInput{CampaignID: "c", TokenID: "token.near", TargetFunding: 1000, StakingAmount: 10})
	assert.ErrorIs(t, err, ErrStakeTooLow)

	_, err = svc.CreatePool(context.Background(), creator, CreateInput{CampaignID: "c", TokenID: "ghost.near", TargetFunding: 1000, StakingAmount: domain.DefaultMinStaking})
	assert.ErrorIs(t, err, ErrTokenNotSupported)
}

func TestPoolReads(t *testing.T) {
	svc, _ := setupPoolsTest(t)
	creator := domain.Actor{UserID: uuid.New()}

	a, err := svc.CreatePool(context.Background(), creator, CreateInput{CampaignID: "a", TokenID: "token.near", TargetFunding: 1000, StakingAmount: domain.DefaultMinStaking})
	require.NoError(t, err)
	_, err = svc.CreatePool(context.Background(), creator, CreateInput{CampaignID: "b", TokenID: "token.near", TargetFunding: 2000, StakingAmount: domain.DefaultMinStaking})
	require.NoError(t, err)

	got, err := svc.GetPool(context.Background(), a.PoolID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.CampaignID)

	_, err = svc.GetPool(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrPoolNotFound)

	all, err := svc.GetAllPools(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inits, err := svc.GetPoolsByStatus(context.Background(), domain.StatusInit)
	require.NoError(t, err)
	assert.Len(t, inits, 2)

	none, err := svc.GetPoolsByStatus(context.Background(), domain.StatusVoting)
	require.NoError(t, err)
	assert.Empty(t, none)

	balance, err := svc.GetCreatorBalance(context.Background(), a.PoolID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMinStaking, balance)

	records, err := svc.GetUserRecords(context.Background(), a.PoolID)
	require.NoError(t, err)
	assert.Empty(t, records)

	_, err = svc.GetUserRecords(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrPoolNotFound)
}
