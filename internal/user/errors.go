package user

import "errors"

var (
	// ErrNotFound indicates the target user record does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidRole rejects role changes outside the known tiers.
	ErrInvalidRole = errors.New("invalid role")
	// ErrSelfDelete stops an admin from deleting their own account.
	ErrSelfDelete = errors.New("cannot delete own account")
	// ErrCurrentPasswordRequired is returned when a password change omits
	// the current password.
	ErrCurrentPasswordRequired = errors.New("current password is required")
	// ErrWrongPassword is returned when the supplied current password does
	// not match.
	ErrWrongPassword = errors.New("current password is incorrect")
)
