package service

import "errors"

// Expected domain failures. Handlers translate these into response
// codes; anything else is an upstream failure and surfaces as a 500.
var (
	// ErrNotFound covers both a missing resource and a resource owned
	// by a different user. The two are deliberately indistinguishable
	// so that probing for other users' resources leaks nothing.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is only returned by account deletion, the one
	// operation that distinguishes a foreign resource from a missing
	// one.
	ErrForbidden = errors.New("forbidden")

	ErrEmailTaken               = errors.New("email already registered")
	ErrInvalidCredentials       = errors.New("incorrect email or password")
	ErrInvalidTaskList          = errors.New("invalid task list")
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
)
