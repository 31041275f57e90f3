package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleJSON = `[
  {"id": 1, "name": "Cat Facts", "category": "Animals", "description": "Random cat facts", "auth": "No", "url": "https://x"},
  {"id": 2, "name": "Dog API", "category": "Animals", "description": "Dog images", "auth": "No", "url": "https://y"},
  {"id": 3, "name": "Weather Now", "category": "Weather", "description": "Current weather", "auth": "API Key", "url": "https://z"}
]`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestFileStore_Load(t *testing.T) {
	path := writeFile(t, t.TempDir(), "freeAPIs.json", sampleJSON)
	s := NewFileStore(path)

	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	snap, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Len() != 3 {
		t.Fatalf("len=%d want 3", snap.Len())
	}
	for i, want := range []string{"Cat Facts", "Dog API", "Weather Now"} {
		if got := snap.At(i).Name; got != want {
			t.Fatalf("entry %d=%q want %q (source order must be kept)", i, got, want)
		}
	}
	if snap.Source != "file:"+path {
		t.Fatalf("source=%q", snap.Source)
	}

	again, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if again.Version != snap.Version {
		t.Fatalf("same bytes should give the same version")
	}
	if again.ID == snap.ID {
		t.Fatalf("every load is a distinct snapshot")
	}
}

func TestFileStore_Failures(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		path string
		want error
	}{
		{"missing file", filepath.Join(dir, "nope.json"), ErrSourceUnavailable},
		{"directory", dir, ErrSourceUnavailable},
		{"malformed", writeFile(t, dir, "bad.json", `{"data": [`), ErrMalformedData},
		{"duplicate ids", writeFile(t, dir, "dup.json", `[
			{"id": 1, "name": "A", "category": "C", "url": "https://a"},
			{"id": 1, "name": "B", "category": "C", "url": "https://b"}
		]`), ErrMalformedData},
		{"invalid entry", writeFile(t, dir, "noname.yaml", "- {id: 1, category: C, url: \"https://a\"}\n"), ErrMalformedData},
		{"saved failure response", writeFile(t, dir, "failed.json", `{"success":false,"message":"boom"}`), ErrMalformedData},
		{"misspelled list key", writeFile(t, dir, "typo.json", `{"api": [{"id": 1, "name": "A", "category": "C", "url": "https://a"}]}`), ErrMalformedData},
		{"empty yaml", writeFile(t, dir, "empty.yaml", ""), ErrMalformedData},
		{"trailing data", writeFile(t, dir, "trailing.json", sampleJSON+" ]]"), ErrMalformedData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := NewFileStore(tc.path).Load(context.Background())
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want %v", err, tc.want)
			}
			if snap != nil {
				t.Fatalf("expected no snapshot on failure, got %d entries", snap.Len())
			}
		})
	}
}

func TestFileStore_LoadHonorsCancelledContext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "freeAPIs.json", sampleJSON)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewFileStore(path).Load(ctx); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err=%v want ErrSourceUnavailable", err)
	}
}

func TestFileStore_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "freeAPIs.json", sampleJSON)
	s := NewFileStore(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// Keep touching the file until the watcher is up and reports it.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-changed:
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("Watch returned %v", err)
			}
			return
		case <-tick.C:
			writeFile(t, dir, "freeAPIs.json", sampleJSON)
		case <-deadline:
			t.Fatalf("no change reported")
		}
	}
}

func TestFileStore_WatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "freeAPIs.json", sampleJSON)

	ctx, cancel := context.WithTimeout(context.Background(), 600*time.Millisecond)
	defer cancel()

	calls := make(chan struct{}, 16)
	go func() {
		for i := 0; i < 5; i++ {
			_ = os.WriteFile(filepath.Join(dir, "other.json"), []byte("[]"), 0o644)
			time.Sleep(50 * time.Millisecond)
		}
	}()

	if err := NewFileStore(path).Watch(ctx, func() { calls <- struct{}{} }); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("sibling writes triggered %d reloads", len(calls))
	}
}
