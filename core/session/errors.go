package session

import "errors"

var (
	// ErrNotFound is returned when a session cannot be found in the store.
	ErrNotFound = errors.New("session not found")
	// ErrMissingUserID is returned when creating a session without an owner.
	ErrMissingUserID = errors.New("user ID is required")
	// ErrTokenGeneration is returned when token generation fails.
	ErrTokenGeneration = errors.New("failed to generate token")
	// ErrCreateSession is returned when persisting a new session fails.
	ErrCreateSession = errors.New("failed to create session")
	// ErrValidateSession is returned when validation cannot reach a verdict
	// because the store failed. A token mismatch is not an error.
	ErrValidateSession = errors.New("failed to validate session")
	// ErrListSessions is returned when listing a user's sessions fails.
	ErrListSessions = errors.New("failed to list sessions")
	// ErrTerminateSession is returned when deleting sessions fails for a
	// reason other than the row being absent.
	ErrTerminateSession = errors.New("failed to terminate session")
)
