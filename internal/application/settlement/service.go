package settlement

import (
	"context"
	"encoding/json"

	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/infrastructure/database"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bridge is the slice of the token-contract collaborator settlement needs.
type Bridge interface {
	Transfer(ctx context.Context, tokenID, recipient string, amount int64, poolID int64) error
	TransferWithdrawal(ctx context.Context, tokenID, recipient string, amount int64, poolID int64) error
}

// Service pays out proportional refunds to backers and withdrawals to
// creators.
type Service struct {
	DB     *gorm.DB
	Bridge Bridge
}

type payoutIntent struct {
	tokenID    string
	recipient  string
	amount     int64
	poolID     int64
	withdrawal bool
}

// ClaimRefund pays one backer their share of a REFUNDED pool. The payout is
// computed from the balance frozen at funding close: total_balance is not
// decremented by claims, so every claimant gets the same percentage of the
// original closing balance. The record's amount is zeroed after the transfer
// is requested; a second claim computes a zero payout and fails.
func (s *Service) ClaimRefund(ctx context.Context, actor domain.Actor, poolID int64) (int64, error) {
	var payout *payoutIntent
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pool domain.Pool
		if err := tx.First(&pool, "pool_id = ?", poolID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrPoolNotFound
			}
			return err
		}
		if pool.Status != domain.StatusRefunded {
			return ErrNotRefunded
		}

		var record domain.UserDepositRecord
		if err := tx.Where("pool_id = ? AND depositor_id = ?", poolID, actor.UserID).First(&record).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNoRecord
			}
			return err
		}

		// Zeroed amount means a prior claim already ran; the recomputed
		// payout would double-pay, so the frozen voting power only counts
		// while the amount is still standing.
		amount := int64(0)
		if record.Amount > 0 {
			amount = domain.ClaimPayout(pool.TotalBalance, record.VotingPower)
		}
		if amount == 0 {
			return ErrNothingToClaim
		}

		payout = &payoutIntent{
			tokenID:   pool.TokenID,
			recipient: actor.UserID.String(),
			amount:    amount,
			poolID:    poolID,
		}

		record.Amount = 0
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"depositor":    actor.UserID.String(),
			"payout":       amount,
			"voting_power": record.VotingPower,
		})
		return tx.Create(&domain.PoolEvent{
			PoolID:    poolID,
			EventType: domain.EventRefundClaimed,
			Actor:     actor.UserID.String(),
			EventData: datatypes.JSON(eventData),
		}).Error
	})
	if err != nil {
		return 0, err
	}

	log.Info().Str("depositor", payout.recipient).Int64("payout", payout.amount).Int64("pool_id", poolID).
		Msg("User withdrew tokens from pool")
	s.send(ctx, payout)
	return payout.amount, nil
}

// WithdrawToCreator moves part of a VOTING pool's balance to its creator.
// Unlike claims, withdrawals do decrement total_balance.
func (s *Service) WithdrawToCreator(ctx context.Context, actor domain.Actor, poolID int64, amount int64) (*domain.Pool, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	var pool domain.Pool
	var payout *payoutIntent
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := database.LoadSettings(tx)
		if err != nil {
			return err
		}
		if !settings.IsOwner(actor.UserID) {
			return ErrOnlyOwner
		}
		if err := tx.First(&pool, "pool_id = ?", poolID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrPoolNotFound
			}
			return err
		}
		if pool.Status != domain.StatusVoting {
			return ErrNotVoting
		}
		if amount > pool.TotalBalance {
			return ErrInsufficientBalance
		}

		payout = &payoutIntent{
			tokenID:    pool.TokenID,
			recipient:  pool.CreatorID.String(),
			amount:     amount,
			poolID:     poolID,
			withdrawal: true,
		}

		pool.TotalBalance -= amount
		if err := tx.Save(&pool).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"amount":            amount,
			"remaining_balance": pool.TotalBalance,
		})
		return tx.Create(&domain.PoolEvent{
			PoolID:    poolID,
			EventType: domain.EventWithdrawal,
			Actor:     actor.UserID.String(),
			EventData: datatypes.JSON(eventData),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("pool_id", poolID).Int64("amount", amount).Int64("remaining", pool.TotalBalance).
		Msg("Withdrawn tokens to creator")
	s.send(ctx, payout)
	return &pool, nil
}

func (s *Service) send(ctx context.Context, p *payoutIntent) {
	if p == nil || s.Bridge == nil {
		return
	}
	// Local state is committed; the transfer is attempted once and failures
	// live in the transfer audit trail only.
	if p.withdrawal {
		_ = s.Bridge.TransferWithdrawal(ctx, p.tokenID, p.recipient, p.amount, p.poolID)
		return
	}
	_ = s.Bridge.Transfer(ctx, p.tokenID, p.recipient, p.amount, p.poolID)
}
