package model

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when registering with an email that already has an account.
	ErrEmailTaken = errors.New("email is already taken")
	// ErrInvalidCredentials is returned when the email exists but the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
