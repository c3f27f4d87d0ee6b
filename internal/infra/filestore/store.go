// Package filestore provides a single-file implementation of SnapshotRepository.
// The whole store lives in one snapshot file (YAML, JSON or CBOR). Reads take a
// shared flock and writes an exclusive one on <path>.lock; writes go through a
// temp file and rename so a crash never leaves a torn snapshot behind.
package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/infra/snapshot"
)

// Ensure Store implements domain.SnapshotRepository.
var _ domain.SnapshotRepository = (*Store)(nil)

// Store implements domain.SnapshotRepository using a snapshot file.
type Store struct {
	codec    domain.Codec
	clock    domain.Clock
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first Save.
func New(path string, codec domain.Codec, clock domain.Clock) *Store {
	return &Store{
		codec:    codec,
		clock:    clock,
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot file.
// A missing file yields an empty store.
func (s *Store) Load() (*domain.TicketStore, error) {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(lock)

	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewTicketStoreWithClock(s.clock), nil
		}
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	store, err := snapshot.Decode(s.codec, content, s.clock)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return store, nil
}

// Save replaces the snapshot file with the complete state of store.
func (s *Store) Save(store *domain.TicketStore) error {
	content, err := snapshot.Encode(s.codec, store)
	if err != nil {
		return err
	}

	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	return writeAtomic(s.path, content, 0o600)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func writeAtomic(path string, content []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
