// Package waitlist is an append-only JSON file log of signup interest.
// It is incidental record-keeping, not a data store the system depends on.
package waitlist

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Entry is one waitlist record.
type Entry struct {
	Email     string `json:"email"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// Store appends entries to a JSON array file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the given file path. The file is
// created on first append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Add appends one entry, stamping it with the current time when the
// timestamp is empty.
func (s *Store) Add(e Entry) error {
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readLocked()
	if err != nil {
		return err
	}
	entries = append(entries, e)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode waitlist: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write waitlist: %w", err)
	}
	return nil
}

// Entries returns the current contents.
func (s *Store) Entries() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *Store) readLocked() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read waitlist: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode waitlist: %w", err)
	}
	return entries, nil
}
