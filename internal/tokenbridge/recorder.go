package tokenbridge

import (
	"context"

	"launchpad-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Recorder wraps a Client and persists a TransferRequest row around every
// attempt. The row is written and the attempt made after the caller's own
// transaction has committed; a failed attempt is recorded, logged and
// swallowed: the engine never rolls back local state for a downstream
// transfer failure.
type Recorder struct {
	DB    *gorm.DB
	Inner Client
}

func (r *Recorder) Transfer(ctx context.Context, tokenID, recipient string, amount int64, poolID int64) error {
	kind := domain.TransferKindTokenPayout
	return r.record(ctx, kind, tokenID, recipient, amount, &poolID, func() error {
		return r.Inner.Transfer(ctx, tokenID, recipient, amount, poolID)
	})
}

// TransferWithdrawal is Transfer with the withdrawal kind on the audit row.
func (r *Recorder) TransferWithdrawal(ctx context.Context, tokenID, recipient string, amount int64, poolID int64) error {
	return r.record(ctx, domain.TransferKindTokenWithdrawal, tokenID, recipient, amount, &poolID, func() error {
		return r.Inner.Transfer(ctx, tokenID, recipient, amount, poolID)
	})
}

func (r *Recorder) TransferNative(ctx context.Context, recipient string, amount int64, poolID int64) error {
	return r.record(ctx, domain.TransferKindNativeRefund, "", recipient, amount, &poolID, func() error {
		return r.Inner.TransferNative(ctx, recipient, amount, poolID)
	})
}

func (r *Recorder) RegisterStorage(ctx context.Context, tokenID, owner string) error {
	return r.record(ctx, domain.TransferKindStorageRegister, tokenID, owner, 0, nil, func() error {
		return r.Inner.RegisterStorage(ctx, tokenID, owner)
	})
}

func (r *Recorder) record(ctx context.Context, kind, tokenID, recipient string, amount int64, poolID *int64, attempt func() error) error {
	row := domain.TransferRequest{
		RequestID: uuid.New(),
		Kind:      kind,
		TokenID:   tokenID,
		Recipient: recipient,
		Amount:    amount,
		PoolID:    poolID,
		Status:    domain.TransferStatusRequested,
	}
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("transfer request row not recorded")
	}

	if err := attempt(); err != nil {
		log.Warn().Err(err).Str("kind", kind).Str("recipient", recipient).Int64("amount", amount).Msg("bridge transfer attempt failed")
		r.DB.WithContext(ctx).Model(&domain.TransferRequest{}).
			Where("request_id = ?", row.RequestID).
			Updates(map[string]interface{}{"status": domain.TransferStatusFailed, "last_error": err.Error()})
		return err
	}

	r.DB.WithContext(ctx).Model(&domain.TransferRequest{}).
		Where("request_id = ?", row.RequestID).
		Update("status", domain.TransferStatusSent)
	return nil
}
