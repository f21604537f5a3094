package admin

import (
	"context"

	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service owns the global engine settings: owner identity, collateral floor
// and the rejection refund percentage.
type Service struct {
	DB *gorm.DB
}

// GetSettings returns the current settings row.
func (s *Service) GetSettings(ctx context.Context) (*domain.EngineSettings, error) {
	return database.LoadSettings(s.DB.WithContext(ctx))
}

// SetMinStaking sets the collateral floor for pool creation. Owner only;
// floor is one base unit.
func (s *Service) SetMinStaking(ctx context.Context, actor domain.Actor, amount int64) (*domain.EngineSettings, error) {
	return s.update(ctx, actor, func(settings *domain.EngineSettings) error {
		if amount < 1 {
			return ErrMinStakingFloor
		}
		settings.MinStakingAmount = amount
		log.Info().Int64("min_staking_amount", amount).Msg("Minimum staking amount updated")
		return nil
	})
}

// SetRefundPercent sets the share of collateral returned on rejection. Owner
// only; 0–100. A value of 0 keeps the one-base-unit sentinel behavior.
func (s *Service) SetRefundPercent(ctx context.Context, actor domain.Actor, percent int) (*domain.EngineSettings, error) {
	return s.update(ctx, actor, func(settings *domain.EngineSettings) error {
		if percent < 0 || percent > 100 {
			return ErrPercentRange
		}
		settings.RefundPercent = percent
		log.Info().Int("refund_percent", percent).Msg("Refund percentage for rejected pools updated")
		return nil
	})
}

// ChangeOwner hands the engine over to a new admin identity. Owner only.
func (s *Service) ChangeOwner(ctx context.Context, actor domain.Actor, newOwner uuid.UUID) (*domain.EngineSettings, error) {
	return s.update(ctx, actor, func(settings *domain.EngineSettings) error {
		if newOwner == uuid.Nil {
			return ErrInvalidOwner
		}
		settings.OwnerID = newOwner
		log.Info().Str("new_owner", newOwner.String()).Msg("Engine owner changed")
		return nil
	})
}

func (s *Service) update(ctx context.Context, actor domain.Actor, mutate func(*domain.EngineSettings) error) (*domain.EngineSettings, error) {
	var out *domain.EngineSettings
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := database.LoadSettings(tx)
		if err != nil {
			return err
		}
		if !settings.IsOwner(actor.UserID) {
			return ErrOnlyOwner
		}
		if err := mutate(settings); err != nil {
			return err
		}
		if err := tx.Save(settings).Error; err != nil {
			return err
		}
		out = settings
		return nil
	})
	return out, err
}
