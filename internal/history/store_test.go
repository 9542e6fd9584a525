package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.Record(ctx, Run{
		File:            "deploy.yaml",
		Errors:          1,
		FirstDiagnostic: "The offending line appears to be:",
	})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if run.ID == "" {
		t.Error("Record() did not assign an ID")
	}
	if run.CreatedAt.IsZero() {
		t.Error("Record() did not assign a timestamp")
	}

	runs, err := s.List(ctx, "deploy.yaml", 10)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("List() returned %d runs, want 1", len(runs))
	}
	if runs[0].ID != run.ID {
		t.Errorf("ID = %q, want %q", runs[0].ID, run.ID)
	}
	if runs[0].Errors != 1 {
		t.Errorf("Errors = %d, want 1", runs[0].Errors)
	}
	if runs[0].FirstDiagnostic != "The offending line appears to be:" {
		t.Errorf("FirstDiagnostic = %q", runs[0].FirstDiagnostic)
	}
}

func TestList_NewestFirstAndLimited(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, Run{
			File:      "deploy.yaml",
			Errors:    i,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	runs, err := s.List(ctx, "deploy.yaml", 3)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("List() returned %d runs, want 3", len(runs))
	}
	if runs[0].Errors != 4 {
		t.Errorf("first run Errors = %d, want 4 (newest)", runs[0].Errors)
	}
}

func TestList_FiltersByFile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Record(ctx, Run{File: "a.yaml"}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if _, err := s.Record(ctx, Run{File: "b.yaml"}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	runs, err := s.List(ctx, "a.yaml", 10)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].File != "a.yaml" {
		t.Errorf("List() = %+v, want one run for a.yaml", runs)
	}
}

func TestRecord_RejectsEmptyFile(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Record(context.Background(), Run{}); err == nil {
		t.Error("Record() accepted run with no file")
	}
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	if _, err := s.Record(ctx, Run{File: "a.yaml", CreatedAt: old}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	if _, err := s.Record(ctx, Run{File: "a.yaml"}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	deleted, err := s.Prune(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Prune() deleted %d runs, want 1", deleted)
	}

	runs, err := s.List(ctx, "a.yaml", 10)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("List() returned %d runs after prune, want 1", len(runs))
	}
}

func TestClose_Idempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

func TestOpen_RejectsEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Open() accepted empty path")
	}
}
