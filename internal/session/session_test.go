package session

import (
	"testing"
	"time"
)

func TestTakeRenderedClearsTracked(t *testing.T) {
	store := NewStore(time.Hour)

	store.TrackMessage(7, 101)
	store.TrackMessage(7, 102)
	store.TrackMessage(8, 201)

	rendered := store.TakeRendered(7)
	if len(rendered) != 2 || rendered[0] != 101 || rendered[1] != 102 {
		t.Fatalf("expected [101 102], got %v", rendered)
	}

	if again := store.TakeRendered(7); len(again) != 0 {
		t.Fatalf("expected empty after take, got %v", again)
	}

	other := store.TakeRendered(8)
	if len(other) != 1 || other[0] != 201 {
		t.Fatalf("expected [201] for other user, got %v", other)
	}
}

func TestPendingEditLifecycle(t *testing.T) {
	store := NewStore(time.Hour)

	if _, ok := store.PendingEdit(7); ok {
		t.Fatalf("expected no pending edit initially")
	}

	store.SetPendingEdit(7, 42)
	taskID, ok := store.PendingEdit(7)
	if !ok || taskID != 42 {
		t.Fatalf("expected pending edit 42, got %d (%v)", taskID, ok)
	}

	if _, ok := store.PendingEdit(8); ok {
		t.Fatalf("expected no pending edit for other user")
	}

	store.ClearPendingEdit(7)
	if _, ok := store.PendingEdit(7); ok {
		t.Fatalf("expected pending edit to be cleared")
	}
}

func TestEvictDropsIdleSessions(t *testing.T) {
	store := NewStore(time.Hour)
	now := time.Now()
	store.now = func() time.Time { return now }

	store.TrackMessage(7, 101)
	store.SetPendingEdit(8, 42)

	now = now.Add(30 * time.Minute)
	store.TrackMessage(8, 201)

	now = now.Add(45 * time.Minute)
	if evicted := store.Evict(); evicted != 1 {
		t.Fatalf("expected 1 session evicted, got %d", evicted)
	}

	if rendered := store.TakeRendered(7); len(rendered) != 0 {
		t.Fatalf("expected idle session state to be gone, got %v", rendered)
	}

	taskID, ok := store.PendingEdit(8)
	if !ok || taskID != 42 {
		t.Fatalf("expected active session to survive, got %d (%v)", taskID, ok)
	}
}
