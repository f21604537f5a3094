package users

import "errors"

var (
	ErrMissingFields   = errors.New("Fullname, email and password are required")
	ErrInvalidEmail    = errors.New("Invalid email format")
	ErrInvalidPassword = errors.New("Password must be at least 8 characters and contain a letter, a number and a special character")
	ErrInvalidFullname = errors.New("Fullname may only contain letters, spaces, hyphens and apostrophes")
	ErrInvalidRole     = errors.New("Invalid role")
	ErrEmailTaken      = errors.New("A user with this email already exists")
	ErrUserNotFound    = errors.New("User not found")
)
