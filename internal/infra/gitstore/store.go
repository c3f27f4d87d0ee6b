// Package gitstore provides a Git plumbing-based implementation of SnapshotRepository.
package gitstore

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/runoshun/ironjira/internal/domain"
	"github.com/runoshun/ironjira/internal/infra/crypto"
	"github.com/runoshun/ironjira/internal/infra/snapshot"
)

// Ensure Store implements domain.SnapshotRepository.
var _ domain.SnapshotRepository = (*Store)(nil)

// Store implements domain.SnapshotRepository using Git plumbing (refs and blobs).
// Nothing touches the working tree, the index or any branch.
//
// Data structure:
//
//	refs/<namespace>/
//	  snapshot  → blob (encoded snapshot, optionally encrypted)
type Store struct {
	repo      *git.Repository
	encryptor *crypto.Encryptor
	codec     domain.Codec
	clock     domain.Clock
	namespace string // e.g., "ironjira"
	mu        sync.RWMutex
}

// New opens the repository at repoPath and creates a Store for namespace.
// If encryptionKey is empty, encryption is disabled; otherwise it must be
// 64 hex characters (32 bytes) for AES-256.
func New(repoPath, namespace, encryptionKey string, codec domain.Codec, clock domain.Clock) (*Store, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo, namespace, encryptionKey, codec, clock)
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace, encryptionKey string, codec domain.Codec, clock domain.Clock) (*Store, error) {
	s := &Store{
		repo:      repo,
		codec:     codec,
		clock:     clock,
		namespace: namespace,
	}
	if encryptionKey != "" {
		encryptor, err := crypto.NewEncryptor(encryptionKey, []byte(s.SnapshotRef()))
		if err != nil {
			return nil, fmt.Errorf("create encryptor: %w", err)
		}
		s.encryptor = encryptor
	}
	return s, nil
}

// SnapshotRef returns the ref the snapshot blob is stored under.
func (s *Store) SnapshotRef() plumbing.ReferenceName {
	return plumbing.ReferenceName("refs/" + s.namespace + "/snapshot")
}

// Load reads the snapshot blob.
// A missing ref yields an empty store.
func (s *Store) Load() (*domain.TicketStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(s.SnapshotRef(), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return domain.NewTicketStoreWithClock(s.clock), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, err
	}

	store, err := snapshot.Decode(s.codec, data, s.clock)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.SnapshotRef(), err)
	}
	return store, nil
}

// Save writes the complete state of store to a new blob and points the
// snapshot ref at it.
func (s *Store) Save(store *domain.TicketStore) error {
	data, err := snapshot.Encode(s.codec, store)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(s.SnapshotRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set snapshot ref: %w", err)
	}
	return nil
}

// writeBlob writes data to a blob and returns the hash.
// If encryption is enabled, the data is encrypted before writing.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	blobData := data
	if s.encryptor != nil {
		encrypted, err := s.encryptor.Encrypt(data)
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("encrypt data: %w", err)
		}
		blobData = encrypted
	}

	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(blobData)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(blobData); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

// readBlob reads and optionally decrypts data from a blob.
// A blob that cannot be decrypted is reported as a corrupt snapshot.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}

	if s.encryptor != nil {
		decrypted, err := s.encryptor.Decrypt(data)
		if err != nil {
			return nil, fmt.Errorf("%w: decrypt %s: %w", domain.ErrCorruptSnapshot, s.SnapshotRef(), err)
		}
		return decrypted, nil
	}

	return data, nil
}
