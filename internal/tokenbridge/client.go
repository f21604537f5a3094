package tokenbridge

import "context"

// Client is the outbound half of the token-contract collaborator. Every call
// is fire-and-forget from the engine's point of view: pool and ledger state is
// committed before the call is made and is never rolled back on failure.
type Client interface {
	// Transfer moves amount of tokenID to recipient (claim payouts, creator
	// withdrawals).
	Transfer(ctx context.Context, tokenID, recipient string, amount int64, poolID int64) error
	// TransferNative returns creator collateral in the native currency.
	TransferNative(ctx context.Context, recipient string, amount int64, poolID int64) error
	// RegisterStorage asks a newly admitted token contract to open a storage
	// account for the engine. Best effort, response ignored.
	RegisterStorage(ctx context.Context, tokenID, owner string) error
}
