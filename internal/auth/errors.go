package auth

import "errors"

var (
	// ErrUserExists is returned when the registration email is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password, so
	// a login failure never reveals which of the two it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
