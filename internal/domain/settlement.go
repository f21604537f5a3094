package domain

import "time"

// Lifecycle timing constants.
const (
	// InitTimeout is how long a pool may sit in INIT before anyone can
	// trigger the auto-reject.
	InitTimeout = 15 * 24 * time.Hour
	// WaitingExtension is added to the pledge window when a pool lands in
	// WAITING at close.
	WaitingExtension = 3 * 24 * time.Hour
)

// CreatorRefundAmount is the collateral returned to the creator when a pool is
// rejected or times out. A refund percent of 0 is a sentinel meaning "return
// exactly one base unit of native currency", not "return nothing".
func CreatorRefundAmount(stakingAmount int64, refundPercent int) int64 {
	if refundPercent == 0 {
		return 1
	}
	return stakingAmount * int64(refundPercent) / 100
}

// VotingPower is a depositor's percentage share of the pool balance at close.
// Callers must not invoke this with totalBalance == 0; the FAILED outcome is
// decided before any power computation.
func VotingPower(amount, totalBalance int64) float64 {
	return float64(amount) / float64(totalBalance) * 100.0
}

// ClaimPayout is the proportional refund for one depositor. totalBalance is
// the pool balance frozen at funding close: it is not decremented as claims
// are paid, so every claimant receives the same percentage of the original
// closing balance. Truncates toward zero.
func ClaimPayout(totalBalance int64, votingPower float64) int64 {
	return int64(float64(totalBalance) * votingPower / 100.0)
}

// FundingOutcome decides the post-funding status, evaluated in strict order:
// an empty pool fails, a funded pool goes to voting, a pool at 80% of target
// may wait, anything else is refunded.
func FundingOutcome(totalBalance, targetFunding int64, isWaitingFunding bool) Status {
	switch {
	case totalBalance == 0:
		return StatusFailed
	case totalBalance >= targetFunding:
		return StatusVoting
	case totalBalance >= targetFunding*80/100 && isWaitingFunding:
		return StatusWaiting
	default:
		return StatusRefunded
	}
}
