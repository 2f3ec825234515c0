package auth

import "errors"

var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidEmail          = errors.New("Invalid Email")
	ErrIncorrectPassword     = errors.New("Incorrect Password")
	ErrNotAuthenticated      = errors.New("Not authenticated")
	ErrEmailTaken            = errors.New("Email already registered")
	ErrAddressTaken          = errors.New("Address already registered")
	ErrWeakPassword          = errors.New("Password does not meet requirements")
	ErrInvalidRegistration   = errors.New("Invalid registration fields")
)
