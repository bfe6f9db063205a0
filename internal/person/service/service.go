package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rosterd/rosterd/internal/person"
	"github.com/rosterd/rosterd/internal/person/store"
)

var (
	ErrNotFound       = errors.New("person not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// Service implements the person CRUD operations over the document store.
// All validation happens inside the store's update region so concurrent
// requests cannot interleave a scan with another request's persist.
type Service struct {
	store *store.Store
}

func New(s *store.Store) *Service {
	return &Service{store: s}
}

// List returns the full collection in insertion order. An empty store yields
// an empty slice, not an error.
func (s *Service) List() []person.Person {
	return s.store.Snapshot()
}

// Get returns the first record whose id matches exactly.
func (s *Service) Get(id string) (person.Person, error) {
	for _, p := range s.store.Snapshot() {
		if p.ID == id {
			return p, nil
		}
	}
	return person.Person{}, ErrNotFound
}

// Create appends a new record with a generated id after checking that no
// existing record holds the same email (exact, case-sensitive match). The
// record is not visible until the document has been persisted.
func (s *Service) Create(ctx context.Context, fields person.Fields) (person.Person, error) {
	var created person.Person
	email, _ := fields["email"].(string)
	err := s.store.Update(ctx, func(doc *person.Document) error {
		for _, p := range doc.Persons {
			if p.Email == email {
				return ErrDuplicateEmail
			}
		}
		created = person.Person{ID: uuid.NewString()}
		created.Apply(fields)
		doc.Persons = append(doc.Persons, created)
		return nil
	})
	if err != nil {
		return person.Person{}, err
	}
	return created, nil
}

// Update merges payload fields into the matching record. Fields absent from
// the payload are left untouched and id is never writable. Email uniqueness
// is not re-checked on update.
func (s *Service) Update(ctx context.Context, id string, fields person.Fields) (person.Person, error) {
	var updated person.Person
	err := s.store.Update(ctx, func(doc *person.Document) error {
		for i := range doc.Persons {
			if doc.Persons[i].ID == id {
				doc.Persons[i].Apply(fields)
				updated = doc.Persons[i]
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return person.Person{}, err
	}
	return updated, nil
}

// Delete removes the matching record, preserving the order of the survivors,
// and returns the removed record's data.
func (s *Service) Delete(ctx context.Context, id string) (person.Person, error) {
	var removed person.Person
	err := s.store.Update(ctx, func(doc *person.Document) error {
		for i := range doc.Persons {
			if doc.Persons[i].ID == id {
				removed = doc.Persons[i]
				doc.Persons = append(doc.Persons[:i], doc.Persons[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return person.Person{}, err
	}
	return removed, nil
}
