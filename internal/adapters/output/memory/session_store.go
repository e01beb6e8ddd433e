package memory

import (
	"context"
	"sync"
	"time"

	"drive-rag/internal/domain"
	"drive-rag/internal/ports/output"
)

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore struct - Output adapter for in-memory session storage
// Uses sync.Map for thread-safe concurrent access. Sessions are stored and
// returned as copies so callers get the same load/modify/save semantics as
// with the durable store. Contents are lost on restart.
type MemorySessionStore struct {
	sessions sync.Map
	ttl      time.Duration
}

// NewMemorySessionStore creates a new in-memory session store.
// ttl: idle duration after which sessions expire, 0 keeps them forever
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl: ttl,
	}
}

// GetTTL returns the configured session ttl.
func (m *MemorySessionStore) GetTTL() time.Duration {
	return m.ttl
}

// GetSession retrieves a session by key.
// Returns nil if the session does not exist or has expired.
// Expired sessions are deleted (lazy cleanup).
func (m *MemorySessionStore) GetSession(ctx context.Context, key string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, exists := m.sessions.Load(key)
	if !exists {
		return nil, nil
	}

	session, ok := value.(*domain.Session)
	if !ok {
		// If data is malformed, delete and return nil
		m.sessions.Delete(key)
		return nil, nil
	}

	if session.IsExpired(m.ttl) {
		// Lazy cleanup: delete expired session
		m.sessions.Delete(key)
		return nil, nil
	}

	return session.Clone(), nil
}

// UpdateSession creates or replaces a session.
// The session's UpdatedAt is set to the current time before storing.
func (m *MemorySessionStore) UpdateSession(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	m.sessions.Store(session.Key, session.Clone())

	return nil
}

// DeleteSession removes a session by key.
// This operation is idempotent - deleting a non-existent session does not return an error.
func (m *MemorySessionStore) DeleteSession(ctx context.Context, key string) error {
	m.sessions.Delete(key)
	return nil
}

// PurgeExpired removes every expired session.
func (m *MemorySessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	if m.ttl <= 0 {
		return 0, nil
	}

	var removed int64
	m.sessions.Range(func(key, value any) bool {
		if session, ok := value.(*domain.Session); !ok || session.IsExpired(m.ttl) {
			m.sessions.Delete(key)
			removed++
		}
		return ctx.Err() == nil
	})

	return removed, ctx.Err()
}
