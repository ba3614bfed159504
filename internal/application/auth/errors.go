package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidEmail          = errors.New("Invalid Email")
	ErrIncorrectPassword     = errors.New("Incorrect Password")
	ErrNotAuthenticated      = errors.New("Not authenticated")
	ErrEmailTaken            = errors.New("Email already registered")
	ErrInvalidRole           = errors.New("Invalid role")
	ErrWeakPassword          = errors.New("Password must be at least 8 characters with a letter, a digit and a symbol")
	ErrInvalidFullname       = errors.New("Invalid full name")
)
