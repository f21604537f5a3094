package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transfer request kinds. Native refunds move the creator's collateral in the
// native currency; the other kinds move the pool's token.
const (
	TransferKindNativeRefund    = "native_refund"
	TransferKindTokenPayout     = "token_payout"
	TransferKindTokenWithdrawal = "token_withdrawal"
	TransferKindStorageRegister = "storage_register"
)

// Transfer request statuses. Local pool/ledger state is committed before the
// bridge call is made, so a failed row is an integrator signal, never a rollback.
const (
	TransferStatusRequested = "requested"
	TransferStatusSent      = "sent"
	TransferStatusFailed    = "failed"
)

// TransferRequest is the audit trail of every outbound movement requested from
// the token-contract bridge.
type TransferRequest struct {
	RequestID uuid.UUID `gorm:"column:request_id;type:uuid;primaryKey" json:"request_id"`
	Kind      string    `gorm:"column:kind;not null" json:"kind"`
	TokenID   string    `gorm:"column:token_id" json:"token_id"`
	Recipient string    `gorm:"column:recipient;not null" json:"recipient"`
	Amount    int64     `gorm:"column:amount;not null" json:"amount"`
	PoolID    *int64    `gorm:"column:pool_id;index" json:"pool_id"`
	Status    string    `gorm:"column:status;not null;default:'requested'" json:"status"`
	LastError string    `gorm:"column:last_error" json:"last_error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (TransferRequest) TableName() string {
	return "TransferRequests"
}
