package pools

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/infrastructure/database"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service creates pools and serves the read side: pool lookups, per-status
// listings and ledger projections.
type Service struct {
	DB *gorm.DB
}

// CreateInput is the creator-supplied part of a new pool.
type CreateInput struct {
	CampaignID        string
	TokenID           string
	MinMultiplePledge int64
	TargetFunding     int64
	StakingAmount     int64
}

// CreatePool locks the creator's collateral and opens a pool in INIT. The
// stake must meet the configured floor and the token must already be in the
// registry.
func (s *Service) CreatePool(ctx context.Context, actor domain.Actor, in CreateInput) (*domain.Pool, error) {
	if strings.TrimSpace(in.CampaignID) == "" {
		return nil, ErrCampaignRequired
	}
	if in.TargetFunding <= 0 {
		return nil, ErrTargetRequired
	}

	var pool domain.Pool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := database.LoadSettings(tx)
		if err != nil {
			return err
		}
		if in.StakingAmount < settings.MinStakingAmount {
			return ErrStakeTooLow
		}

		var count int64
		if err := tx.Model(&domain.Asset{}).Where("token_id = ?", in.TokenID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTokenNotSupported
		}

		pool = domain.Pool{
			CampaignID:        in.CampaignID,
			CreatorID:         actor.UserID,
			StakingAmount:     in.StakingAmount,
			Status:            domain.StatusInit,
			TokenID:           in.TokenID,
			TotalBalance:      0,
			TargetFunding:     in.TargetFunding,
			MinMultiplePledge: in.MinMultiplePledge,
			TimeInit:          time.Now(),
		}
		if err := tx.Create(&pool).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"campaign_id":    pool.CampaignID,
			"token_id":       pool.TokenID,
			"staking_amount": pool.StakingAmount,
			"target_funding": pool.TargetFunding,
		})
		return tx.Create(&domain.PoolEvent{
			PoolID:    pool.PoolID,
			EventType: domain.EventPoolCreated,
			Actor:     actor.UserID.String(),
			EventData: datatypes.JSON(eventData),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("pool_id", pool.PoolID).Str("creator", actor.UserID.String()).Msg("Pool created")
	return &pool, nil
}

// GetPool returns one pool by id.
func (s *Service) GetPool(ctx context.Context, poolID int64) (*domain.Pool, error) {
	var pool domain.Pool
	if err := s.DB.WithContext(ctx).First(&pool, "pool_id = ?", poolID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPoolNotFound
		}
		return nil, err
	}
	return &pool, nil
}

// GetAllPools returns every pool, oldest first.
func (s *Service) GetAllPools(ctx context.Context) ([]domain.Pool, error) {
	var out []domain.Pool
	if err := s.DB.WithContext(ctx).Order("pool_id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetPoolsByStatus filters pools on a lifecycle status.
func (s *Service) GetPoolsByStatus(ctx context.Context, status domain.Status) ([]domain.Pool, error) {
	var out []domain.Pool
	if err := s.DB.WithContext(ctx).Where("status = ?", status).Order("pool_id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetUserRecords returns the full deposit ledger of a pool, including zeroed
// rows kept for audit.
func (s *Service) GetUserRecords(ctx context.Context, poolID int64) ([]domain.UserDepositRecord, error) {
	if _, err := s.GetPool(ctx, poolID); err != nil {
		return nil, err
	}
	var out []domain.UserDepositRecord
	if err := s.DB.WithContext(ctx).Where("pool_id = ?", poolID).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetCreatorBalance returns the collateral still locked for a pool.
func (s *Service) GetCreatorBalance(ctx context.Context, poolID int64) (int64, error) {
	pool, err := s.GetPool(ctx, poolID)
	if err != nil {
		return 0, err
	}
	return pool.StakingAmount, nil
}
