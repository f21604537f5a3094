package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMinStaking is the floor for creator collateral, in token base units.
const DefaultMinStaking int64 = 1_000_000

// EngineSettings is the single global configuration row: the engine owner
// (admin identity), the collateral floor and the rejection refund percentage.
// Authorization for admin operations is a pure check of actor against OwnerID,
// never an ambient global.
type EngineSettings struct {
	ID               int64     `gorm:"column:id;primaryKey" json:"-"`
	OwnerID          uuid.UUID `gorm:"column:owner_id;type:uuid;not null" json:"owner_id"`
	MinStakingAmount int64     `gorm:"column:min_staking_amount;not null" json:"min_staking_amount"`
	RefundPercent    int       `gorm:"column:refund_percent;not null;default:0" json:"refund_percent"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (EngineSettings) TableName() string {
	return "EngineSettings"
}

// IsOwner reports whether actor is the current engine owner.
func (s EngineSettings) IsOwner(actor uuid.UUID) bool {
	return actor != uuid.Nil && actor == s.OwnerID
}
