package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncer_CollapsesBursts(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	defer d.stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("callback ran %d times, want 1", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	d.trigger(func() { calls.Add(1) })
	d.stop()

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("callback ran %d times after stop, want 0", got)
	}
}

func TestDebouncer_LastCallbackWins(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	defer d.stop()

	var got atomic.Int32
	d.trigger(func() { got.Store(1) })
	d.trigger(func() { got.Store(2) })

	time.Sleep(100 * time.Millisecond)
	if got.Load() != 2 {
		t.Errorf("ran callback %d, want 2", got.Load())
	}
}

func TestShouldProcess(t *testing.T) {
	w := &Watcher{opts: DefaultOptions()}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"yaml write", fsnotify.Event{Name: "deploy.yaml", Op: fsnotify.Write}, true},
		{"yml create", fsnotify.Event{Name: "deploy.yml", Op: fsnotify.Create}, true},
		{"uppercase extension", fsnotify.Event{Name: "deploy.YAML", Op: fsnotify.Write}, true},
		{"chmod only", fsnotify.Event{Name: "deploy.yaml", Op: fsnotify.Chmod}, false},
		{"wrong extension", fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: ".deploy.yaml", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.shouldProcess(tt.event); got != tt.want {
				t.Errorf("shouldProcess(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatch_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deploy.yaml")
	if err := os.WriteFile(path, []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	opts := DefaultOptions()
	opts.Path = dir
	opts.Debounce = 20 * time.Millisecond

	w, err := New(opts, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	changed := make(chan string, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(p string) error {
			select {
			case changed <- p:
			default:
			}
			return nil
		})
	}()

	// Give the watch loop time to register the directory.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("name: y\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	select {
	case p := <-changed:
		if filepath.Base(p) != "deploy.yaml" {
			t.Errorf("changed path = %q, want deploy.yaml", p)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for change callback")
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() failed: %v", err)
	}
	if err := <-done; err != nil {
		t.Errorf("Watch() returned error: %v", err)
	}
}

func TestWatch_RejectsSecondStart(t *testing.T) {
	dir := t.TempDir()

	opts := DefaultOptions()
	opts.Path = dir

	w, err := New(opts, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Watch(ctx, func(string) error { return nil })
	time.Sleep(50 * time.Millisecond)

	if err := w.Watch(ctx, func(string) error { return nil }); err == nil {
		t.Error("second Watch() did not fail")
	}
}
