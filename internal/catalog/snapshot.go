package catalog

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot is a catalog as loaded at one point in time. It is immutable:
// entries are copied in on construction and copied out by Entries.
type Snapshot struct {
	ID       uuid.UUID
	Version  string
	Source   string
	LoadedAt time.Time

	entries []Entry
}

// NewSnapshot validates entries and freezes them into a snapshot. An empty
// version is replaced by a hash of the entries' canonical JSON.
func NewSnapshot(entries []Entry, source, version string) (*Snapshot, error) {
	if err := Validate(entries); err != nil {
		return nil, err
	}

	frozen := make([]Entry, len(entries))
	copy(frozen, entries)

	if version == "" {
		v, err := versionOf(frozen)
		if err != nil {
			return nil, err
		}
		version = v
	}

	return &Snapshot{
		ID:       uuid.New(),
		Version:  version,
		Source:   source,
		LoadedAt: time.Now().UTC(),
		entries:  frozen,
	}, nil
}

func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

func (s *Snapshot) At(i int) Entry { return s.entries[i] }

// Entries returns a copy of the entries in source order. Never nil.
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, s.Len())
	if s != nil {
		copy(out, s.entries)
	}
	return out
}

func versionOf(entries []Entry) (string, error) {
	b, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("hash entries: %w", err)
	}
	return hashBytes(b), nil
}

func hashBytes(b []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(b))
}
