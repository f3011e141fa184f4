package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/studystreak/internal/model"
)

var (
	ErrDocumentUnreadable = errors.New("storage: document unreadable")
	ErrUnknownBackend     = errors.New("storage: unknown backend")
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Repository persists the whole store. Load and Save move the complete
// document; Get, Put and Delete address one user's record. No call takes a
// lock, so concurrent writers race with last-writer-wins.
type Repository interface {
	Load(ctx context.Context) (model.Store, error)
	Save(ctx context.Context, store model.Store) error

	Get(ctx context.Context, userID string) (*model.UserRecord, bool, error)
	Put(ctx context.Context, userID string, rec *model.UserRecord) error
	Delete(ctx context.Context, userID string) (bool, error)

	Close() error
}

// Open returns the repository for backend rooted at path.
func Open(backend, path string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendJSON:
		return NewJSONRepository(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
