package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pool status values. CLOSED and SUCCESSFUL are reachable only through the
// admin override; the guarded transitions never produce them.
type Status string

const (
	StatusInit       Status = "INIT"
	StatusApproved   Status = "APPROVED"
	StatusFunding    Status = "FUNDING"
	StatusRejected   Status = "REJECTED"
	StatusCanceled   Status = "CANCELED"
	StatusFailed     Status = "FAILED"
	StatusWaiting    Status = "WAITING"
	StatusRefunded   Status = "REFUNDED"
	StatusVoting     Status = "VOTING"
	StatusClosed     Status = "CLOSED"
	StatusSuccessful Status = "SUCCESSFUL"
)

// ValidStatuses is the full set accepted by the admin override endpoint.
var ValidStatuses = []Status{
	StatusInit, StatusApproved, StatusFunding, StatusRejected, StatusCanceled,
	StatusFailed, StatusWaiting, StatusRefunded, StatusVoting, StatusClosed,
	StatusSuccessful,
}

// IsValidStatus returns true if s is one of the known pool statuses.
func IsValidStatus(s Status) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Pool is one crowdfunding campaign: creator collateral, the funding window,
// the accepted token and the running backer balance.
type Pool struct {
	PoolID              int64          `gorm:"column:pool_id;primaryKey;autoIncrement" json:"pool_id"`
	CampaignID          string         `gorm:"column:campaign_id;not null" json:"campaign_id"`
	CreatorID           uuid.UUID      `gorm:"column:creator_id;type:uuid;not null;index" json:"creator_id"`
	StakingAmount       int64          `gorm:"column:staking_amount;not null" json:"staking_amount"`
	Status              Status         `gorm:"column:status;type:varchar(20);not null;default:'INIT';index" json:"status"`
	TokenID             string         `gorm:"column:token_id;not null" json:"token_id"`
	TotalBalance        int64          `gorm:"column:total_balance;not null;default:0" json:"total_balance"`
	TargetFunding       int64          `gorm:"column:target_funding;not null" json:"target_funding"`
	MinMultiplePledge   int64          `gorm:"column:min_multiple_pledge;not null;default:0" json:"min_multiple_pledge"`
	TimeInit            time.Time      `gorm:"column:time_init;not null" json:"time_init"`
	TimeStartPledge     *time.Time     `gorm:"column:time_start_pledge" json:"time_start_pledge"`
	TimeEndPledge       *time.Time     `gorm:"column:time_end_pledge" json:"time_end_pledge"`
	FundingDurationDays int64          `gorm:"column:funding_duration_days;not null;default:0" json:"funding_duration_days"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Pool) TableName() string {
	return "Pools"
}
