package store

import (
	"bytes"
	"context"
	"errors"

	"github.com/rosterd/rosterd/internal/storage"
)

// MinIOBackend stores the serialized document as a single JSON object in a
// bucket, overwritten wholesale on every save.
type MinIOBackend struct {
	storage *storage.MinIOStorage
	key     string
}

func NewMinIOBackend(s *storage.MinIOStorage, key string) *MinIOBackend {
	if key == "" {
		key = "persons.json"
	}
	return &MinIOBackend{storage: s, key: key}
}

func (m *MinIOBackend) Load(ctx context.Context) ([]byte, error) {
	b, err := m.storage.GetObject(ctx, m.key)
	if errors.Is(err, storage.ErrObjectMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (m *MinIOBackend) Save(ctx context.Context, data []byte) error {
	return m.storage.PutObject(ctx, m.key, bytes.NewReader(data), int64(len(data)), "application/json")
}
