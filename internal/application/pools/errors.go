package pools

import "errors"

var (
	ErrPoolNotFound      = errors.New("Pool does not exist")
	ErrStakeTooLow       = errors.New("Staking amount is below the minimum")
	ErrTokenNotSupported = errors.New("Token is not supported. Only tokens added by admin can be used for pools")
	ErrCampaignRequired  = errors.New("Campaign id is required")
	ErrTargetRequired    = errors.New("Target funding must be a positive amount")
)
