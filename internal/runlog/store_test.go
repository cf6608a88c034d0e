package runlog

import (
	"testing"
	"time"

	"github.com/dkim-dev/changeset/internal/engine"
	"github.com/dkim-dev/changeset/internal/fsops"
	"github.com/dkim-dev/changeset/internal/task"
)

func testSummary() *engine.ApplySummary {
	return &engine.ApplySummary{
		Operations: []engine.FileOperationResult{
			{
				Change:  task.FileChange{Path: "a.txt", Action: task.ActionCreate, Content: task.ContentOf("hi")},
				Status:  engine.StatusCreated,
				Message: "written successfully",
			},
		},
		Counts: map[engine.Status]int{
			engine.StatusCreated: 1,
			engine.StatusUpdated: 0,
			engine.StatusDeleted: 0,
			engine.StatusSkipped: 0,
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(fsops.NewRealFS(), t.TempDir())
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	calls := 0
	store.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	return store
}

func TestStoreRecordAndLoad(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.Record("task.json", "scaffold", "/project", testSummary())
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected non-empty ID")
	}

	loaded, err := store.Load(rec.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.TaskFile != "task.json" || loaded.TaskName != "scaffold" || loaded.RootDir != "/project" {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Counts[engine.StatusCreated] != 1 {
		t.Errorf("counts lost: %v", loaded.Counts)
	}
	if len(loaded.Operations) != 1 || loaded.Operations[0].Status != engine.StatusCreated {
		t.Errorf("operations lost: %+v", loaded.Operations)
	}
	// Opaque metadata round-trips through persistence too.
	if loaded.Operations[0].Change.Path != "a.txt" {
		t.Errorf("change not preserved: %+v", loaded.Operations[0].Change)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Load("nope"); err == nil {
		t.Fatal("expected error for missing record")
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.Record("task.json", "", "/project", testSummary()); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].ID <= records[i].ID {
			t.Errorf("records not newest-first: %q before %q", records[i-1].ID, records[i].ID)
		}
	}
}

func TestStoreListEmptyDir(t *testing.T) {
	store := NewStore(fsops.NewRealFS(), t.TempDir()+"/never-created")
	records, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestStorePrune(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.Record("task.json", "", "/project", testSummary()); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	removed, err := store.Prune(2)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 surviving records, got %d", len(records))
	}

	// Pruning again is a no-op.
	removed, err = store.Prune(2)
	if err != nil {
		t.Fatalf("second Prune failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("second prune removed %d, want 0", removed)
	}
}
