package lifecycle

import "errors"

var (
	ErrPoolNotFound      = errors.New("Pool does not exist")
	ErrOnlyOwner         = errors.New("Only admin can set pool status")
	ErrOnlyCreator       = errors.New("Only the creator of the pool can perform this action")
	ErrNotInit           = errors.New("Pool must be in INIT status")
	ErrNotApproved       = errors.New("Pool must be in APPROVED status to set funding parameters")
	ErrNotFunding        = errors.New("Pool is not in FUNDING status")
	ErrNotWaiting        = errors.New("Pool status must be WAITING to change it after waiting period")
	ErrFundingNotEnded   = errors.New("Funding period has not ended yet")
	ErrTimeoutNotReached = errors.New("Pool has not been in INIT status for 15 days yet")
	ErrZeroDuration      = errors.New("Funding duration must be greater than 0 days")
	ErrStartNotFuture    = errors.New("Start time must be in the future")
	ErrInvalidStatus     = errors.New("Invalid status provided")
)
