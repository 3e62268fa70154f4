package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level errors
var (
	// Authentication: dùng chung cho email sai và password sai
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidInput = errors.New("invalid input")
)
