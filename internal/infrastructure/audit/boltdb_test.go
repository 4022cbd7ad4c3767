package audit

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "audit.db"), "audit")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	actions := []string{ActionRegister, ActionLoginSuccess, ActionTaskCreate}
	for i, action := range actions {
		entry := Entry{
			UserID:    "user-1",
			Action:    action,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Append(entry); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	size, err := store.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != len(actions) {
		t.Errorf("size = %d, want %d", size, len(actions))
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != len(actions) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(actions))
	}
	// newest first
	if entries[0].Action != ActionTaskCreate || entries[2].Action != ActionRegister {
		t.Errorf("unexpected order: %s .. %s", entries[0].Action, entries[2].Action)
	}
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if err := store.Append(Entry{Action: ActionLoginFailure}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	entries, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2", len(entries))
	}
}

func TestPrune(t *testing.T) {
	store := openTestStore(t)

	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := store.Append(Entry{Action: ActionLoginSuccess, Timestamp: old}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(Entry{Action: ActionTaskDelete, Timestamp: recent}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := store.Prune(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Action != ActionTaskDelete {
		t.Errorf("surviving entry = %s, want %s", entries[0].Action, ActionTaskDelete)
	}
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	store := openTestStore(t)

	if err := store.Append(Entry{Action: ActionLoginSuccess}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	entries, err := store.Recent(1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].ID == "" {
		t.Error("entry id not assigned")
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("entry timestamp not assigned")
	}
}
