package lifecycle

import (
	"context"
	"encoding/json"
	"time"

	"launchpad-backend/internal/domain"
	"launchpad-backend/internal/infrastructure/database"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bridge is the slice of the token-contract collaborator the lifecycle needs:
// collateral refunds move native currency.
type Bridge interface {
	TransferNative(ctx context.Context, recipient string, amount int64, poolID int64) error
}

// Service drives a pool through the guarded state machine. Every transition
// runs as one DB transaction; bridge calls happen after the local commit.
type Service struct {
	DB     *gorm.DB
	Bridge Bridge
}

type refundIntent struct {
	recipient string
	amount    int64
	poolID    int64
}

// ReviewPool is the admin decision on an INIT pool. Approval moves it to
// APPROVED; rejection refunds collateral per the configured percent and zeroes
// the stake.
func (s *Service) ReviewPool(ctx context.Context, actor domain.Actor, poolID int64, approve bool) (*domain.Pool, error) {
	var pool domain.Pool
	var refund *refundIntent
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := database.LoadSettings(tx)
		if err != nil {
			return err
		}
		if !settings.IsOwner(actor.UserID) {
			return ErrOnlyOwner
		}
		if err := lockPool(tx, poolID, &pool); err != nil {
			return err
		}
		if pool.Status != domain.StatusInit {
			return ErrNotInit
		}

		if approve {
			pool.Status = domain.StatusApproved
			if err := tx.Save(&pool).Error; err != nil {
				return err
			}
			log.Info().Int64("pool_id", poolID).Msg("Pool has been approved and is now in APPROVED status")
			return recordEvent(tx, poolID, domain.EventPoolApproved, actor.UserID.String(), nil)
		}

		amount := domain.CreatorRefundAmount(pool.StakingAmount, settings.RefundPercent)
		refund = &refundIntent{recipient: pool.CreatorID.String(), amount: amount, poolID: poolID}

		pool.Status = domain.StatusRejected
		pool.StakingAmount = 0
		if err := tx.Save(&pool).Error; err != nil {
			return err
		}
		log.Info().Int64("pool_id", poolID).Int("refund_percent", settings.RefundPercent).
			Int64("refund_amount", amount).Msg("Pool has been rejected, deposit share returned to creator")
		return recordEvent(tx, poolID, domain.EventPoolRejected, actor.UserID.String(), map[string]interface{}{
			"refund_amount":  amount,
			"refund_percent": settings.RefundPercent,
		})
	})
	if err != nil {
		return nil, err
	}
	s.sendRefund(ctx, refund)
	return &pool, nil
}

// CheckInitTimeout auto-rejects a pool stuck in INIT for more than 15 days.
// Anyone may trigger it; the transition is edge-triggered, never a background
// timer.
func (s *Service) CheckInitTimeout(ctx context.Context, poolID int64) (*domain.Pool, error) {
	var pool domain.Pool
	var refund *refundIntent
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := database.LoadSettings(tx)
		if err != nil {
			return err
		}
		if err := lockPool(tx, poolID, &pool); err != nil {
			return err
		}
		if pool.Status != domain.StatusInit {
			return ErrNotInit
		}
		if !time.Now().After(pool.TimeInit.Add(domain.InitTimeout)) {
			return ErrTimeoutNotReached
		}

		amount := domain.CreatorRefundAmount(pool.StakingAmount, settings.RefundPercent)
		refund = &refundIntent{recipient: pool.CreatorID.String(), amount: amount, poolID: poolID}

		pool.Status = domain.StatusRejected
		pool.StakingAmount = 0
		if err := tx.Save(&pool).Error; err != nil {
			return err
		}
		log.Info().Int64("pool_id", poolID).Int64("refund_amount", amount).
			Msg("Pool has been auto-rejected after 15 days in INIT status")
		return recordEvent(tx, poolID, domain.EventPoolAutoReject, "", map[string]interface{}{
			"refund_amount":  amount,
			"refund_percent": settings.RefundPercent,
		})
	})
	if err != nil {
		return nil, err
	}
	s.sendRefund(ctx, refund)
	return &pool, nil
}

// CancelPool lets the creator abandon an INIT pool; the full stake comes back.
func (s *Service) CancelPool(ctx context.Context, actor domain.Actor, poolID int64) (*domain.Pool, error) {
	var pool domain.Pool
	var refund *refundIntent
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPool(tx, poolID, &pool); err != nil {
			return err
		}
		if pool.CreatorID != actor.UserID {
			return ErrOnlyCreator
		}
		if pool.Status != domain.StatusInit {
			return ErrNotInit
		}

		refund = &refundIntent{recipient: pool.CreatorID.String(), amount: pool.StakingAmount, poolID: poolID}

		pool.Status = domain.StatusCanceled
		pool.StakingAmount = 0
		if err := tx.Save(&pool).Error; err != nil {
			return err
		}
		log.Info().Int64("pool_id", poolID).Int64("refund_amount", refund.amount).
			Msg("Pool has been canceled by creator, full deposit returned")
		return recordEvent(tx, poolID, domain.EventPoolCanceled, actor.UserID.String(), map[string]interface{}{
			"refund_amount": refund.amount,
		})
	})
	if err != nil {
		return nil, err
	}
	s.sendRefund(ctx, refund)
	return &pool, nil
}

// SetFundingWindow opens the pledge window on an APPROVED pool: start must be
// in the future and the window runs durationDays from it.
func (s *Service) SetFundingWindow(ctx context.Context, actor domain.Actor, poolID int64, start time.Time, durationDays int64) (*domain.Pool, error) {
	var pool domain.Pool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPool(tx, poolID, &pool); err != nil {
			return err
		}
		if pool.CreatorID != actor.UserID {
			return ErrOnlyCreator
		}
		if pool.Status != domain.StatusApproved {
			return ErrNotApproved
		}
		if durationDays <= 0 {
			return ErrZeroDuration
		}
		if !start.After(time.Now()) {
			return ErrStartNotFuture
		}

		end := start.Add(time.Duration(durationDays) * 24 * time.Hour)
		pool.TimeStartPledge = &start
		pool.TimeEndPledge = &end
		pool.FundingDurationDays = durationDays
		pool.Status = domain.StatusFunding
		if err := tx.Save(&pool).Error; err != nil {
			return err
		}
		log.Info().Int64("pool_id", poolID).Time("start", start).Int64("duration_days", durationDays).
			Msg("Pool funding parameters set")
		return recordEvent(tx, poolID, domain.EventFundingOpened, actor.UserID.String(), map[string]interface{}{
			"time_start_pledge": start,
			"time_end_pledge":   end,
			"duration_days":     durationDays,
		})
	})
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// CloseFunding evaluates the funding outcome after the window has ended.
// Voting power is recomputed for every ledger row of the pool at this moment
// and never again; an empty pool fails before any power computation runs.
func (s *Service) CloseFunding(ctx context.Context, actor domain.Actor, poolID int64, isWaitingFunding bool) (*domain.Pool, error) {
	var pool domain.Pool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := database.LoadSettings(tx)
		if err != nil {
			return err
		}
		if !settings.IsOwner(actor.UserID) {
			return ErrOnlyOwner
		}
		if err := lockPool(tx, poolID, &pool); err != nil {
			return err
		}
		if pool.Status != domain.StatusFunding {
			return ErrNotFunding
		}
		if pool.TimeEndPledge == nil || !time.Now().After(*pool.TimeEndPledge) {
			return ErrFundingNotEnded
		}

		if pool.TotalBalance > 0 {
			var records []domain.UserDepositRecord
			if err := tx.Where("pool_id = ?", poolID).Find(&records).Error; err != nil {
				return err
			}
			for i := range records {
				records[i].VotingPower = domain.VotingPower(records[i].Amount, pool.TotalBalance)
				if err := tx.Save(&records[i]).Error; err != nil {
					return err
				}
			}
		}

		outcome := domain.FundingOutcome(pool.TotalBalance, pool.TargetFunding, isWaitingFunding)
		pool.Status = outcome
		if outcome == domain.StatusWaiting {
			extended := pool.TimeEndPledge.Add(domain.WaitingExtension)
			pool.TimeEndPledge = &extended
		}
		if err := tx.Save(&pool).Error; err != nil {
			return err
		}
		log.Info().Int64("pool_id", poolID).Str("outcome", string(outcome)).
			Int64("total_balance", pool.TotalBalance).Msg("Funding result checked")
		return recordEvent(tx, poolID, domain.EventFundingClosed, actor.UserID.String(), map[string]interface{}{
			"outcome":            outcome,
			"total_balance":      pool.TotalBalance,
			"target_funding":     pool.TargetFunding,
			"is_waiting_funding": isWaitingFunding,
		})
	})
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// CreatorDecide is the creator's call on a WAITING pool: take the partial
// funding to VOTING, or send the pool to REFUNDED.
func (s *Service) CreatorDecide(ctx context.Context, actor domain.Actor, poolID int64, approve bool) (*domain.Pool, error) {
	var pool domain.Pool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockPool(tx, poolID, &pool); err != nil {
			return err
		}
		if pool.CreatorID != actor.UserID {
			return ErrOnlyCreator
		}
		if pool.Status != domain.StatusWaiting {
			return ErrNotWaiting
		}

		if approve {
			pool.Status = domain.StatusVoting
		} else {
			pool.Status = domain.StatusRefunded
		}
		if err := tx.Save(&pool).Error; err != nil {
			return err
		}
		log.Info().Int64("pool_id", poolID).Bool("approve", approve).Str("status", string(pool.Status)).
			Msg("Pool status changed by creator after waiting period")
		return recordEvent(tx, poolID, domain.EventCreatorDecided, actor.UserID.String(), map[string]interface{}{
			"approve": approve,
			"status":  pool.Status,
		})
	})
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// ForceSetStatus is the audited admin override. It skips every transition
// guard; the FORCE_STATUS audit row is the only trace it leaves besides the
// status itself.
func (s *Service) ForceSetStatus(ctx context.Context, actor domain.Actor, poolID int64, status domain.Status) (*domain.Pool, error) {
	if !domain.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	var pool domain.Pool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := database.LoadSettings(tx)
		if err != nil {
			return err
		}
		if !settings.IsOwner(actor.UserID) {
			return ErrOnlyOwner
		}
		if err := lockPool(tx, poolID, &pool); err != nil {
			return err
		}

		previous := pool.Status
		pool.Status = status
		if err := tx.Save(&pool).Error; err != nil {
			return err
		}
		log.Warn().Int64("pool_id", poolID).Str("from", string(previous)).Str("to", string(status)).
			Str("actor", actor.UserID.String()).Msg("Pool status overridden by owner")
		return recordEvent(tx, poolID, domain.EventForceStatus, actor.UserID.String(), map[string]interface{}{
			"from": previous,
			"to":   status,
		})
	})
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

func (s *Service) sendRefund(ctx context.Context, refund *refundIntent) {
	if refund == nil || s.Bridge == nil {
		return
	}
	// Local state is already committed; the attempt is made once and any
	// failure stays in the transfer audit trail.
	_ = s.Bridge.TransferNative(ctx, refund.recipient, refund.amount, refund.poolID)
}

func lockPool(tx *gorm.DB, poolID int64, pool *domain.Pool) error {
	if err := tx.First(pool, "pool_id = ?", poolID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrPoolNotFound
		}
		return err
	}
	return nil
}

func recordEvent(tx *gorm.DB, poolID int64, eventType, actor string, payload map[string]interface{}) error {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	b, _ := json.Marshal(payload)
	return tx.Create(&domain.PoolEvent{
		PoolID:    poolID,
		EventType: eventType,
		Actor:     actor,
		EventData: datatypes.JSON(b),
	}).Error
}
