package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/studystreak/internal/model"
)

// JSONRepository keeps the whole store in one JSON document. Every call reads
// or rewrites the complete file.
type JSONRepository struct {
	path string
}

func NewJSONRepository(path string) (*JSONRepository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("storage: empty document path")
	}
	return &JSONRepository{path: path}, nil
}

func (r *JSONRepository) Path() string {
	return r.path
}

func (r *JSONRepository) Close() error {
	return nil
}

// Load reads the document. A missing or empty file is an empty store. A file
// that cannot be read or decoded also yields an empty store, together with an
// error wrapping ErrDocumentUnreadable so the caller can report it.
func (r *JSONRepository) Load(ctx context.Context) (model.Store, error) {
	if err := ctx.Err(); err != nil {
		return model.Store{}, err
	}
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Store{}, nil
		}
		return model.Store{}, fmt.Errorf("%w: read %s: %v", ErrDocumentUnreadable, r.path, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return model.Store{}, nil
	}
	var store model.Store
	if err := json.Unmarshal(raw, &store); err != nil {
		return model.Store{}, fmt.Errorf("%w: decode %s: %v", ErrDocumentUnreadable, r.path, err)
	}
	if store == nil {
		store = model.Store{}
	}
	return store, nil
}

func (r *JSONRepository) Save(ctx context.Context, store model.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if store == nil {
		store = model.Store{}
	}
	dir := filepath.Dir(r.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create document dir: %w", err)
		}
	}
	payload, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

func (r *JSONRepository) Get(ctx context.Context, userID string) (*model.UserRecord, bool, error) {
	store, err := r.Load(ctx)
	rec, ok := store.Lookup(userID)
	return rec, ok, err
}

func (r *JSONRepository) Put(ctx context.Context, userID string, rec *model.UserRecord) error {
	store, err := r.Load(ctx)
	if err != nil && !errors.Is(err, ErrDocumentUnreadable) {
		return err
	}
	if rec == nil {
		rec = model.NewUserRecord()
	}
	store[userID] = rec
	return r.Save(ctx, store)
}

// Delete removes the user's record. When the user has no record the file is
// left untouched.
func (r *JSONRepository) Delete(ctx context.Context, userID string) (bool, error) {
	store, err := r.Load(ctx)
	if err != nil && !errors.Is(err, ErrDocumentUnreadable) {
		return false, err
	}
	if _, ok := store[userID]; !ok {
		return false, err
	}
	delete(store, userID)
	return true, r.Save(ctx, store)
}
