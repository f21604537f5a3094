package admin

import "errors"

var (
	ErrOnlyOwner       = errors.New("Only the engine owner can perform this action")
	ErrPercentRange    = errors.New("Refund percentage must be between 0 and 100")
	ErrMinStakingFloor = errors.New("Minimum staking cannot be less than one base unit")
	ErrInvalidOwner    = errors.New("New owner must be a valid user id")
)
