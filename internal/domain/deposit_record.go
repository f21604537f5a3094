package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserDepositRecord is one backer's cumulative pledge into a pool. Amount is
// zeroed exactly once on a successful claim; the row itself is kept for audit,
// so a pool's ledger history survives settlement.
type UserDepositRecord struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PoolID      int64     `gorm:"column:pool_id;not null;uniqueIndex:idx_pool_depositor" json:"pool_id"`
	DepositorID uuid.UUID `gorm:"column:depositor_id;type:uuid;not null;uniqueIndex:idx_pool_depositor" json:"depositor_id"`
	Amount      int64     `gorm:"column:amount;not null;default:0" json:"amount"`
	// VotingPower is the depositor's percentage share of the pool balance,
	// computed once when funding closes and 0 before that.
	VotingPower float64   `gorm:"column:voting_power;not null;default:0" json:"voting_power"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (UserDepositRecord) TableName() string {
	return "UserDepositRecords"
}
