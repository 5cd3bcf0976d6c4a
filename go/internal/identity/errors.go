package identity

import "errors"

var (
	// ErrInvalidCredentials is returned when a username/password pair does not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken is returned when registering a username that already exists
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidRegistration is returned when a username or password is empty
	ErrInvalidRegistration = errors.New("username and password are required")

	// ErrUnknownIdentity is returned when saving stats for a username not in the store
	ErrUnknownIdentity = errors.New("unknown identity")
)
