package assets

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

type fakeBridge struct {
	registered []string
}

func (f *fakeBridge) RegisterStorage(ctx context.Context, tokenID, owner string) error {
	f.registered = append(f.registered, tokenID)
	return nil
}

func setupAssetsTest(t *testing.T) (*Service, *gorm.DB, *fakeBridge, uuid.UUID) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	owner := uuid.New()
	require.NoError(t, database.EnsureSettings(db, owner))
	bridge := &fakeBridge{}
	return &Service{DB: db, Bridge: bridge, EngineAccount: "launchpad.engine"}, db, bridge, owner
}

func TestAddToken_IdempotentWithStorageRegistration(t *testing.T) {
	svc, _, bridge, owner := setupAssetsTest(t)
	actor := domain.Actor{UserID: owner}

	asset, err := svc.AddToken(context.Background(), actor, "token.near")
	require.NoError(t, err)
	assert.Equal(t, "token.near", asset.TokenID)
	assert.Equal(t, []string{"token.near"}, bridge.registered)

	// adding the same token again changes nothing and does not re-register
	again, err := svc.AddToken(context.Background(), actor, "token.near")
	require.NoError(t, err)
	assert.Equal(t, asset.ID, again.ID)
	assert.Len(t, bridge.registered, 1)

	list, err := svc.ListAssets(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddToken_Guards(t *testing.T) {
	svc, _, _, owner := setupAssetsTest(t)

	_, err := svc.AddToken(context.Background(), domain.Actor{UserID: uuid.New()}, "token.near")
	assert.ErrorIs(t, err, ErrOnlyOwner)

	_, err = svc.AddToken(context.Background(), domain.Actor{UserID: owner}, "   ")
	assert.ErrorIs(t, err, ErrTokenIDMissing)
}

func TestRemoveToken_IsNoOp(t *testing.T) {
	svc, _, _, owner := setupAssetsTest(t)
	actor := domain.Actor{UserID: owner}

	_, err := svc.AddToken(context.Background(), actor, "token.near")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveToken(context.Background(), actor, "token.near"))

	// removal is logged but never applied
	supported, err := svc.IsSupported(context.Background(), "token.near")
	require.NoError(t, err)
	assert.True(t, supported)

	assert.ErrorIs(t, svc.RemoveToken(context.Background(), domain.Actor{UserID: uuid.New()}, "token.near"), ErrOnlyOwner)
}
