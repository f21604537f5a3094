package domain

import "github.com/google/uuid"

// Actor is the authenticated identity an operation runs as. It is passed
// explicitly into every service call; nothing reads the caller from ambient
// state.
type Actor struct {
	UserID uuid.UUID
	Role   string
}
