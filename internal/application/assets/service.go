package assets

import (
	"context"
	"strings"

	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/infrastructure/database"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Bridge is the slice of the token-contract collaborator the registry needs.
type Bridge interface {
	RegisterStorage(ctx context.Context, tokenID, owner string) error
}

// Service is the admission-control list of token identifiers the engine will
// custody.
type Service struct {
	DB     *gorm.DB
	Bridge Bridge
	// EngineAccount is the identity registered with each token contract as
	// the storage owner.
	EngineAccount string
}

// AddToken admits a token id. Idempotent: an already-present token is logged
// and returned unchanged. On first admission a storage registration request is
// sent to the token contract, fire-and-forget.
func (s *Service) AddToken(ctx context.Context, actor domain.Actor, tokenID string) (*domain.Asset, error) {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return nil, ErrTokenIDMissing
	}

	var asset domain.Asset
	var created bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := database.LoadSettings(tx)
		if err != nil {
			return err
		}
		if !settings.IsOwner(actor.UserID) {
			return ErrOnlyOwner
		}

		err = tx.Where("token_id = ?", tokenID).First(&asset).Error
		if err == nil {
			log.Info().Str("token_id", tokenID).Msg("Token already exists in the list")
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		asset = domain.Asset{TokenID: tokenID, Balances: 0}
		created = true
		return tx.Create(&asset).Error
	})
	if err != nil {
		return nil, err
	}

	// Storage registration is best effort and happens after the local commit;
	// a failed attempt is logged by the bridge recorder, never surfaced here.
	if created && s.Bridge != nil {
		_ = s.Bridge.RegisterStorage(ctx, tokenID, s.EngineAccount)
	}
	return &asset, nil
}

// RemoveToken is a documented no-op deletion: the caller is authorized and an
// audit line is written, but the registry entry is left in place so existing
// pools keep their entitlement.
func (s *Service) RemoveToken(ctx context.Context, actor domain.Actor, tokenID string) error {
	settings, err := database.LoadSettings(s.DB.WithContext(ctx))
	if err != nil {
		return err
	}
	if !settings.IsOwner(actor.UserID) {
		return ErrOnlyOwner
	}
	log.Info().Str("token_id", tokenID).Msg("Token has been deleted")
	return nil
}

// IsSupported is a pure lookup.
func (s *Service) IsSupported(ctx context.Context, tokenID string) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Asset{}).Where("token_id = ?", tokenID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAssets returns all registered token identifiers.
func (s *Service) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	var out []domain.Asset
	if err := s.DB.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
