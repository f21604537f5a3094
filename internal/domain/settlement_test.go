package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatorRefundAmount(t *testing.T) {
	// 0 percent is a sentinel: exactly one base unit
	assert.Equal(t, int64(1), CreatorRefundAmount(1_000_000, 0))
	assert.Equal(t, int64(500_000), CreatorRefundAmount(1_000_000, 50))
	assert.Equal(t, int64(1_000_000), CreatorRefundAmount(1_000_000, 100))
	// integer division truncates toward zero
	assert.Equal(t, int64(33), CreatorRefundAmount(100, 33))
	assert.Equal(t, int64(0), CreatorRefundAmount(1, 50))
}

func TestVotingPower(t *testing.T) {
	assert.InDelta(t, 40.0, VotingPower(40, 100), 1e-9)
	assert.InDelta(t, 60.0, VotingPower(60, 100), 1e-9)
	assert.InDelta(t, 100.0, VotingPower(250, 250), 1e-9)
	assert.InDelta(t, 33.333333333, VotingPower(1, 3), 1e-6)
}

func TestVotingPowerSumsToHundred(t *testing.T) {
	amounts := []int64{7, 13, 29, 51, 100, 300}
	var total int64
	for _, a := range amounts {
		total += a
	}
	var sum float64
	for _, a := range amounts {
		sum += VotingPower(a, total)
	}
	assert.InDelta(t, 100.0, sum, 1e-9*float64(len(amounts)))
}

func TestClaimPayout(t *testing.T) {
	assert.Equal(t, int64(40), ClaimPayout(100, 40.0))
	assert.Equal(t, int64(60), ClaimPayout(100, 60.0))
	// truncation, never rounding up
	assert.Equal(t, int64(33), ClaimPayout(100, 33.333333333))
	assert.Equal(t, int64(0), ClaimPayout(100, 0))
	assert.Equal(t, int64(0), ClaimPayout(2, 33.0))
}

func TestFundingOutcome(t *testing.T) {
	// zero balance fails before anything else
	assert.Equal(t, StatusFailed, FundingOutcome(0, 100, true))
	// target reached
	assert.Equal(t, StatusVoting, FundingOutcome(100, 100, false))
	assert.Equal(t, StatusVoting, FundingOutcome(150, 100, true))
	// 80 percent with waiting allowed
	assert.Equal(t, StatusWaiting, FundingOutcome(90, 100, true))
	assert.Equal(t, StatusWaiting, FundingOutcome(160, 200, true))
	// 80 percent but waiting not allowed
	assert.Equal(t, StatusRefunded, FundingOutcome(90, 100, false))
	// below 80 percent
	assert.Equal(t, StatusRefunded, FundingOutcome(79, 100, true))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusInit))
	assert.True(t, IsValidStatus(StatusSuccessful))
	assert.False(t, IsValidStatus(Status("PENDING")))
}
