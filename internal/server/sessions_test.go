package server

import (
	"log/slog"
	"sync"
	"testing"

	"mockmate/internal/errors"
	"mockmate/internal/session"
)

func newTestStore() *SessionStore {
	return NewSessionStore(errors.NewLogger(slog.LevelError))
}

func TestSessionStoreCreateAndGet(t *testing.T) {
	store := newTestStore()

	s := session.New("role", "resume")
	id := store.Create(s)
	if id == "" {
		t.Fatal("Create() returned an empty ID")
	}

	ms, ok := store.Get(id)
	if !ok {
		t.Fatal("Get() did not find the created session")
	}
	if ms.Session != s {
		t.Error("Get() returned a different session")
	}
	if ms.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	if _, ok := store.Get("unknown-id"); ok {
		t.Error("Get() found a session for an unknown ID")
	}
}

func TestSessionStoreUniqueIDs(t *testing.T) {
	store := newTestStore()

	first := store.Create(session.New("a", "b"))
	second := store.Create(session.New("a", "b"))
	if first == second {
		t.Errorf("Create() reused ID %q", first)
	}
	if store.Count() != 2 {
		t.Errorf("Count() = %d, want 2", store.Count())
	}
}

func TestSessionStoreDelete(t *testing.T) {
	store := newTestStore()
	id := store.Create(session.New("role", "resume"))

	if !store.Delete(id) {
		t.Error("Delete() = false for an existing session")
	}
	if _, ok := store.Get(id); ok {
		t.Error("Get() found a deleted session")
	}
	if store.Delete(id) {
		t.Error("Delete() = true for an already deleted session")
	}
	if store.Count() != 0 {
		t.Errorf("Count() = %d, want 0", store.Count())
	}
}

func TestSessionStoreConcurrentAccess(t *testing.T) {
	store := newTestStore()

	var wg sync.WaitGroup
	ids := make([]string, 50)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = store.Create(session.New("role", "resume"))
		}(i)
	}
	wg.Wait()

	if store.Count() != len(ids) {
		t.Fatalf("Count() = %d, want %d", store.Count(), len(ids))
	}

	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, ok := store.Get(ids[i]); !ok {
				t.Errorf("Get(%q) did not find the session", ids[i])
			}
			store.Delete(ids[i])
		}(i)
	}
	wg.Wait()

	if store.Count() != 0 {
		t.Errorf("Count() after deletes = %d, want 0", store.Count())
	}
}
