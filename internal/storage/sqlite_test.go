package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(RunRecord{Scene: "demo", Ticks: 5}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run after reopen, got %d", len(runs))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTemp(t)

	in := RunRecord{
		Scene:      "demo",
		Ticks:      250,
		Steps:      25,
		Collisions: 3,
		Rejected:   7,
		Removed:    1,
		Duration:   8250 * time.Millisecond,
	}
	id, err := store.SaveRun(in)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveRun() id = %d, expected positive", id)
	}

	runs, err := store.SceneRuns("demo")
	if err != nil {
		t.Fatalf("SceneRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}

	got := runs[0]
	if got.ID != id || got.Ticks != 250 || got.Steps != 25 || got.Collisions != 3 ||
		got.Rejected != 7 || got.Removed != 1 {
		t.Errorf("SceneRuns()[0] = %+v, expected %+v", got, in)
	}
	if got.Duration != in.Duration {
		t.Errorf("Duration = %v, expected %v", got.Duration, in.Duration)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTemp(t)

	for _, scene := range []string{"demo", "orbit", "demo", "pinball"} {
		if _, err := store.SaveRun(RunRecord{Scene: scene}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	tests := []struct {
		limit    int
		expected []string
	}{
		{2, []string{"pinball", "demo"}},
		{10, []string{"pinball", "demo", "orbit", "demo"}},
		{0, []string{"pinball", "demo", "orbit", "demo"}},
	}

	for _, tt := range tests {
		runs, err := store.RecentRuns(tt.limit)
		if err != nil {
			t.Fatalf("RecentRuns(%d) failed: %v", tt.limit, err)
		}
		if len(runs) != len(tt.expected) {
			t.Errorf("RecentRuns(%d) returned %d runs, expected %d", tt.limit, len(runs), len(tt.expected))
			continue
		}
		for i, r := range runs {
			if r.Scene != tt.expected[i] {
				t.Errorf("RecentRuns(%d)[%d].Scene = %q, expected %q", tt.limit, i, r.Scene, tt.expected[i])
			}
		}
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTemp(t)

	_, _ = store.SaveRun(RunRecord{Scene: "demo"})
	_, _ = store.SaveRun(RunRecord{Scene: "orbit"})

	if err := store.ClearRuns("demo"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	demo, _ := store.SceneRuns("demo")
	if len(demo) != 0 {
		t.Errorf("Expected 0 demo runs after clear, got %d", len(demo))
	}
	orbit, _ := store.SceneRuns("orbit")
	if len(orbit) != 1 {
		t.Errorf("Expected orbit runs untouched, got %d", len(orbit))
	}
}
