package protocal

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"drive-rag/configs"
	"drive-rag/internal/adapters/output/memory"
	"drive-rag/internal/domain"
)

// countingStore counts purge calls
type countingStore struct {
	*memory.MemorySessionStore
	purges atomic.Int32
}

func (s *countingStore) PurgeExpired(ctx context.Context) (int64, error) {
	s.purges.Add(1)
	return s.MemorySessionStore.PurgeExpired(ctx)
}

// TestNewSessionStoreMemoryDriver tests that the memory driver needs no database
func TestNewSessionStoreMemoryDriver(t *testing.T) {
	cfg := &configs.Config{Session: configs.Session{Driver: DriverMemory, TTL: time.Hour}}

	store, db, err := newSessionStore(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if db != nil {
		t.Error("expected no database for the memory driver")
	}
	if _, ok := store.(*memory.MemorySessionStore); !ok {
		t.Errorf("expected a memory store, got %T", store)
	}
}

// TestNewSessionStoreUnknownDriver tests that a typo in session.driver is reported
func TestNewSessionStoreUnknownDriver(t *testing.T) {
	cfg := &configs.Config{Session: configs.Session{Driver: "mongo"}}

	if _, _, err := newSessionStore(cfg); err == nil {
		t.Fatal("expected an error for an unknown driver")
	}
}

// TestNewSessionStorePostgresRequiresAddress tests that postgres without a host fails fast
func TestNewSessionStorePostgresRequiresAddress(t *testing.T) {
	cfg := &configs.Config{Session: configs.Session{Driver: DriverPostgres}}

	if _, _, err := newSessionStore(cfg); err == nil {
		t.Fatal("expected an error without postgres settings")
	}
}

// TestPurgeSessionsRunsUntilCancelled tests the periodic cleanup loop
func TestPurgeSessionsRunsUntilCancelled(t *testing.T) {
	store := &countingStore{MemorySessionStore: memory.NewMemorySessionStore(time.Minute)}
	idle := domain.NewSession("idle")
	_ = store.UpdateSession(context.Background(), idle)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		purgeSessions(ctx, store, time.Minute, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for store.purges.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected purge loop to stop after cancel")
	}
	if store.purges.Load() < 2 {
		t.Errorf("expected at least 2 purges, got %d", store.purges.Load())
	}
}

// TestPurgeSessionsDisabledWithoutTTL tests that no loop runs when sessions never expire
func TestPurgeSessionsDisabledWithoutTTL(t *testing.T) {
	store := &countingStore{MemorySessionStore: memory.NewMemorySessionStore(0)}

	done := make(chan struct{})
	go func() {
		purgeSessions(context.Background(), store, 0, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected purge loop to return immediately")
	}
	if store.purges.Load() != 0 {
		t.Errorf("expected no purge, got %d", store.purges.Load())
	}
}
