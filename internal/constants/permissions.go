package constants

const (
	ViewData        = "view_data"
	CreatePool      = "create_pool"
	ManagePool      = "manage_pool" // creator-side lifecycle: window, cancel, waiting decision
	ReviewPool      = "review_pool"
	CloseFunding    = "close_funding"
	WithdrawCreator = "withdraw_creator"
	ForceStatus     = "force_status"
	ManageAssets    = "manage_assets"
	ManageSettings  = "manage_settings"
	ClaimRefund     = "claim_refund"
)
