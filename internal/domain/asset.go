package domain

import "time"

// Asset is one fungible-token identifier the engine is allowed to custody.
// Balances is an informational placeholder carried from the on-chain registry;
// no transition reads it.
type Asset struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	TokenID   string    `gorm:"column:token_id;not null;uniqueIndex" json:"token_id"`
	Balances  int64     `gorm:"column:balances;not null;default:0" json:"balances"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Asset) TableName() string {
	return "Assets"
}
