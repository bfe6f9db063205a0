package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rosterd/rosterd/internal/person"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := Open(ctx, NewFileBackend(path))
	require.NoError(t, err)
	require.Empty(t, s.Snapshot())
}

func TestUpdatePersistsAndSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")

	s, err := Open(ctx, NewFileBackend(path))
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		id := id
		err := s.Update(ctx, func(doc *person.Document) error {
			doc.Persons = append(doc.Persons, person.Person{ID: id, Email: id + "@x.com"})
			return nil
		})
		require.NoError(t, err)
	}

	// file must hold the full document after every mutation
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), `"persons"`)

	// reopen simulates a process restart
	s2, err := Open(ctx, NewFileBackend(path))
	require.NoError(t, err)
	got := s2.Snapshot()
	require.Len(t, got, 3)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "b", got[1].ID)
	require.Equal(t, "c", got[2].ID)
}

type failingBackend struct{}

func (failingBackend) Load(context.Context) ([]byte, error) { return nil, nil }
func (failingBackend) Save(context.Context, []byte) error   { return errors.New("disk full") }

func TestUpdateNotPublishedWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, failingBackend{})
	require.NoError(t, err)

	err = s.Update(ctx, func(doc *person.Document) error {
		doc.Persons = append(doc.Persons, person.Person{ID: "a"})
		return nil
	})
	require.Error(t, err)
	require.Empty(t, s.Snapshot())
}

func TestUpdateFnErrorSkipsPersist(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")
	s, err := Open(ctx, NewFileBackend(path))
	require.NoError(t, err)

	sentinel := errors.New("nope")
	err = s.Update(ctx, func(doc *person.Document) error { return sentinel })
	require.ErrorIs(t, err, sentinel)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
