package assets

import "errors"

var (
	ErrOnlyOwner      = errors.New("Only the admin can manage the token list")
	ErrTokenIDMissing = errors.New("Token id is required")
)
