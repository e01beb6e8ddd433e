package output

import (
	"context"

	"drive-rag/internal/domain"
)

// SessionStore interface - Output port
// Defines what the application needs for durable per-session state.
// Every request loads the session, modifies its own copy and saves it back;
// nothing is cached between requests. There is no optimistic concurrency
// control: concurrent writers for the same key are last-writer-wins.
// Implementations must be safe for concurrent access.
type SessionStore interface {
	// GetSession retrieves a session by key.
	// Returns nil if the session does not exist or has expired; expired
	// sessions are removed lazily. The returned value is a private copy.
	// Returns an error only if there is a storage access failure.
	GetSession(ctx context.Context, key string) (*domain.Session, error)

	// UpdateSession creates or replaces a session.
	// The session's UpdatedAt is set to the current time.
	// Returns an error if the session cannot be stored.
	UpdateSession(ctx context.Context, session *domain.Session) error

	// DeleteSession removes a session by key.
	// This operation is idempotent - deleting a non-existent session
	// should not return an error.
	DeleteSession(ctx context.Context, key string) error

	// PurgeExpired removes every session idle for longer than the configured
	// ttl and returns how many were removed. A store without ttl removes nothing.
	PurgeExpired(ctx context.Context) (int64, error)
}
