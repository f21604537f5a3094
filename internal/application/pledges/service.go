package pledges

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"launchpad-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Result of an inbound transfer notification. RefundAmount is what the bridge
// must send back to the depositor: the full amount when any guard fails, zero
// when the pledge was accepted. The sender already parted with the tokens
// before the engine could validate, so a misrouted deposit is returned, never
// treated as a caller error.
type Result struct {
	Accepted     bool   `json:"accepted"`
	RefundAmount int64  `json:"refund_amount"`
	Reason       string `json:"reason,omitempty"`
	PoolID       int64  `json:"pool_id,omitempty"`
}

// Service applies inbound token transfers to pool ledgers.
type Service struct {
	DB *gorm.DB
}

// HandleIncomingTransfer is the pledge operation. tokenID is the contract the
// transfer arrived from, senderID the resolved depositor identity and memo the
// target pool id. Returns a Result for the bridge; an error only on storage
// failure.
func (s *Service) HandleIncomingTransfer(ctx context.Context, tokenID, senderID string, amount int64, memo string) (*Result, error) {
	log.Info().Str("sender", senderID).Int64("amount", amount).Str("token_id", tokenID).
		Msg("Received tokens")

	if amount <= 0 {
		return refuse(amount, "Amount must be positive"), nil
	}

	depositor, err := uuid.Parse(senderID)
	if err != nil {
		return refuse(amount, "Unknown sender identity"), nil
	}

	poolID, err := strconv.ParseInt(memo, 10, 64)
	if err != nil {
		return refuse(amount, "Invalid pool ID in message"), nil
	}

	var outcome *Result
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var supported int64
		if err := tx.Model(&domain.Asset{}).Where("token_id = ?", tokenID).Count(&supported).Error; err != nil {
			return err
		}
		if supported == 0 {
			outcome = refuse(amount, "Token ID from message does not match any token ID in the list")
			return nil
		}

		var pool domain.Pool
		if err := tx.First(&pool, "pool_id = ?", poolID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				outcome = refuse(amount, "Pool does not exist")
				return nil
			}
			return err
		}

		if pool.Status != domain.StatusFunding {
			outcome = refuse(amount, "Pool is not in funding status")
			return nil
		}

		now := time.Now()
		if pool.TimeStartPledge == nil || pool.TimeEndPledge == nil ||
			now.Before(*pool.TimeStartPledge) || now.After(*pool.TimeEndPledge) {
			outcome = refuse(amount, "Not within pledge period")
			return nil
		}

		if tokenID != pool.TokenID {
			outcome = refuse(amount, "Invalid token for this pool")
			return nil
		}

		var record domain.UserDepositRecord
		err := tx.Where("pool_id = ? AND depositor_id = ?", poolID, depositor).First(&record).Error
		if err == gorm.ErrRecordNotFound {
			record = domain.UserDepositRecord{
				PoolID:      poolID,
				DepositorID: depositor,
				Amount:      amount,
				VotingPower: 0,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			record.Amount += amount
			if err := tx.Save(&record).Error; err != nil {
				return err
			}
		}

		pool.TotalBalance += amount
		if err := tx.Save(&pool).Error; err != nil {
			return err
		}

		eventData, _ := json.Marshal(map[string]interface{}{
			"depositor":     depositor.String(),
			"amount":        amount,
			"total_balance": pool.TotalBalance,
		})
		if err := tx.Create(&domain.PoolEvent{
			PoolID:    poolID,
			EventType: domain.EventPledgeAccepted,
			Actor:     depositor.String(),
			EventData: datatypes.JSON(eventData),
		}).Error; err != nil {
			return err
		}

		outcome = &Result{Accepted: true, RefundAmount: 0, PoolID: poolID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome.Accepted {
		log.Info().Str("sender", senderID).Int64("amount", amount).Int64("pool_id", poolID).
			Msg("User pledged tokens to pool")
	} else {
		log.Info().Str("sender", senderID).Int64("amount", amount).Str("reason", outcome.Reason).
			Msg("Pledge refused, returning tokens to sender")
	}
	return outcome, nil
}

func refuse(amount int64, reason string) *Result {
	return &Result{Accepted: false, RefundAmount: amount, Reason: reason}
}
