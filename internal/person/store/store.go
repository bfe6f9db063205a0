package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rosterd/rosterd/internal/person"
)

// Backend reads and writes the serialized document as one opaque blob.
// Load returns (nil, nil) when the storage object does not exist yet.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Store owns the in-memory document and mediates every read and write against
// the backend. Mutations go through Update, which holds the lock for the whole
// read-modify-write-persist cycle, so two concurrent creates cannot both pass
// a uniqueness scan before either persists.
type Store struct {
	mu      sync.Mutex
	backend Backend
	doc     *person.Document
}

// Open loads the persisted document from the backend. An absent or empty
// storage object initializes an empty collection.
func Open(ctx context.Context, b Backend) (*Store, error) {
	raw, err := b.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	doc := &person.Document{Persons: []person.Person{}}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, doc); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		if doc.Persons == nil {
			doc.Persons = []person.Person{}
		}
	}
	return &Store{backend: b, doc: doc}, nil
}

// Snapshot returns the current person sequence in insertion order. Callers
// must treat it as read-only; all mutations go through Update.
func (s *Store) Snapshot() []person.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Persons
}

// Update runs fn against a copy of the document, persists the copy, and only
// then publishes it as the readable state. If fn or the backend write fails
// the visible in-memory document is left untouched.
func (s *Store) Update(ctx context.Context, fn func(doc *person.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.doc.Clone()
	if err := fn(next); err != nil {
		return err
	}
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.backend.Save(ctx, raw); err != nil {
		return fmt.Errorf("persist document: %w", err)
	}
	s.doc = next
	return nil
}
