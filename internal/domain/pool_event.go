package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Lifecycle event types written to the audit log. FORCE_STATUS is only ever
// written by the override endpoint, which runs outside the guarded state machine.
const (
	EventPoolCreated    = "POOL_CREATED"
	EventPoolApproved   = "POOL_APPROVED"
	EventPoolRejected   = "POOL_REJECTED"
	EventPoolAutoReject = "POOL_AUTO_REJECTED"
	EventPoolCanceled   = "POOL_CANCELED"
	EventFundingOpened  = "FUNDING_OPENED"
	EventFundingClosed  = "FUNDING_CLOSED"
	EventPledgeAccepted = "PLEDGE_ACCEPTED"
	EventCreatorDecided = "CREATOR_DECIDED"
	EventRefundClaimed  = "REFUND_CLAIMED"
	EventWithdrawal     = "CREATOR_WITHDRAWAL"
	EventForceStatus    = "FORCE_STATUS"
)

// PoolEvent is one audit row per lifecycle transition or money movement.
type PoolEvent struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PoolID    int64          `gorm:"column:pool_id;not null;index" json:"pool_id"`
	EventType string         `gorm:"column:event_type;not null" json:"event_type"`
	Actor     string         `gorm:"column:actor" json:"actor"`
	EventData datatypes.JSON `gorm:"column:event_data;type:json" json:"event_data"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (PoolEvent) TableName() string {
	return "PoolEvents"
}
