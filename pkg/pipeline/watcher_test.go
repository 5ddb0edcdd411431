package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcher_Relevant(t *testing.T) {
	w := NewWatcher(".", time.Second)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"xes created", fsnotify.Event{Name: "group_2_way.xes", Op: fsnotify.Create}, true},
		{"xes written", fsnotify.Event{Name: "a.xes", Op: fsnotify.Write}, true},
		{"xes renamed", fsnotify.Event{Name: "a.xes", Op: fsnotify.Rename}, true},
		{"uppercase extension", fsnotify.Event{Name: "A.XES", Op: fsnotify.Write}, true},
		{"xes removed", fsnotify.Event{Name: "a.xes", Op: fsnotify.Remove}, false},
		{"permission change", fsnotify.Event{Name: "a.xes", Op: fsnotify.Chmod}, false},
		{"other file written", fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatcher_TriggersAfterDebounce(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	triggered := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() {
			select {
			case triggered <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher time to register before producing events.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "group_2_way.xes"), []byte("<log></log>"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-triggered:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not trigger after a file change")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "absent"), 10*time.Millisecond)
	if err := w.Run(context.Background(), func() {}); err == nil {
		t.Fatal("Run() on a missing directory should fail")
	}
}

func TestScheduler_InvalidExpression(t *testing.T) {
	s := NewScheduler()
	if err := s.Run(context.Background(), "not a cron", func() {}); err == nil {
		t.Fatal("Run() with an invalid cron expression should fail")
	}
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	s := NewScheduler()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, "0 0 1 1 *", func() {})
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after context cancellation")
	}
}
