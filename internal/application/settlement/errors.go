package settlement

import "errors"

var (
	ErrPoolNotFound        = errors.New("Pool does not exist")
	ErrOnlyOwner           = errors.New("Only admin can withdraw funds to the creator")
	ErrNotRefunded         = errors.New("Pool is not in REFUNDED status")
	ErrNotVoting           = errors.New("Pool must be in VOTING status to withdraw funds")
	ErrNoRecord            = errors.New("User has no record in this pool")
	ErrNothingToClaim      = errors.New("No funds available for withdrawal")
	ErrInsufficientBalance = errors.New("Insufficient pool balance for the requested withdrawal amount")
	ErrInvalidAmount       = errors.New("Withdrawal amount must be positive")
)
