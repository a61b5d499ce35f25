package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, _, found, err := s.Get("never-cached.md")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("found = true for a location never cached")
	}
}

func TestPutAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Put("q.md", "first body"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	body, fetchedAt, found, err := s.Get("q.md")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("found = false after Put")
	}
	if body != "first body" {
		t.Errorf("body = %q", body)
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Errorf("fetched_at = %v, not recent", fetchedAt)
	}

	// Upsert replaces the body in place.
	if err := s.Put("q.md", "second body"); err != nil {
		t.Fatalf("Put upsert: %v", err)
	}
	body, _, _, err = s.Get("q.md")
	if err != nil {
		t.Fatalf("Get after upsert: %v", err)
	}
	if body != "second body" {
		t.Errorf("body after upsert = %q", body)
	}
}

func TestPurge(t *testing.T) {
	s := newTestStore(t)

	if err := s.Put("fresh.md", "body"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Nothing a day old yet.
	n, err := s.Purge(24 * time.Hour)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 0 {
		t.Errorf("purged %d fresh entries, want 0", n)
	}

	// A negative age makes every entry stale.
	n, err = s.Purge(-time.Second)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d entries, want 1", n)
	}
	if _, _, found, _ := s.Get("fresh.md"); found {
		t.Error("entry survived purge")
	}
}
