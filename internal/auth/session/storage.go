package session

import "context"

// Storage defines the session storage API
type Storage interface {
	// GetByRawToken retrieves a session by its raw (prior hashing) token
	GetByRawToken(ctx context.Context, rawToken string) (*Session, error)

	// Create creates a new session for the given profile and returns its raw token
	Create(ctx context.Context, profileID string, expires int64) (string, error)

	// TerminateByRawToken terminates a session by its raw token
	TerminateByRawToken(ctx context.Context, rawToken string) error

	// TerminateByProfileID terminates all sessions of a specific profile
	TerminateByProfileID(ctx context.Context, profileID string) error

	// TerminateExpired terminates all sessions that are expired and returns their amount
	TerminateExpired(ctx context.Context) (int, error)
}
