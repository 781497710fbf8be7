package file

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"

	audit "unibus/pkg/platform/audit"
)

// Store appends audit entries to a file, one JSON object per line.
// The file is opened in append-only mode; existing lines are never rewritten.
type Store struct {
	path string
	mu   sync.Mutex
	f    *os.File
}

// Open opens (or creates) the audit log at path.
func Open(path string) (*Store, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open audit log %s: %w", path, err)
	}
	return &Store{path: path, f: f}, nil
}

func (s *Store) Append(_ context.Context, entry audit.Entry) error {
	line, err := audit.Encode(entry)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return fmt.Errorf("audit log %s is closed", s.path)
	}
	if _, err := s.f.Write(line); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// List reads back up to limit entries from the start of the file.
// A limit <= 0 returns all entries.
func (s *Store) List(_ context.Context, limit int) ([]audit.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var entries []audit.Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if limit > 0 && len(entries) >= limit {
			break
		}
		entry, err := audit.Decode(scanner.Bytes())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	return entries, nil
}

// Close flushes and closes the underlying file.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
